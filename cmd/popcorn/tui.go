package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// TUI runs the interactive interface
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unknown command %q", cmd.Args().First())
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive UI needs a terminal; try 'popcorn search <query>'")
	}

	if err := r.ensure(true); err != nil {
		return err
	}

	r.logger.Info("starting popcorn", "version", Version)
	if !r.config.HasAPIKey() {
		fmt.Fprintln(r.errOutput, "Warning: no OMDb API key configured (see 'popcorn config init').")
	}

	model := tui.NewModel(r.search, r.detail, r.watchlist, r.logger, r.config.UI.ShowSummary)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	r.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		r.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	r.logger.Info("shutting down")
	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Start the interactive interface (default)",
		Action: r.TUI,
	}
}
