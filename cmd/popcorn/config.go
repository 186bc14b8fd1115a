package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/popcorn/internal/config"
	"github.com/urfave/cli/v3"
)

// InitConfig writes a default configuration file
func (r *Runner) InitConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = filepath.Join(config.DefaultConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if key := cmd.String("api-key"); key != "" {
		cfg.OMDb.APIKey = key
	}

	written, err := config.SaveConfig(cfg, path)
	if err != nil {
		return err
	}

	r.writePlain("✓ Configuration saved to %s\n", written)
	if !cfg.HasAPIKey() {
		r.writePlainln("Add your OMDb API key (omdb.api_key) or set POPCORN_OMDB_API_KEY.")
	}
	return nil
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-key", Usage: "OMDb API key to store"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: r.InitConfig,
			},
		},
	}
}
