package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	runner := NewRunner(RunnerOpts{})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the root command. Without a subcommand it starts the TUI.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "popcorn",
		Usage:   "Search movies, rate them and keep a watched list",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Before:   r.before,
		After:    r.after,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
