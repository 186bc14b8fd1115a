package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
	"github.com/urfave/cli/v3"
)

// watchedFile is the TOML document layout: one [[movie]] table per entry
type watchedFile struct {
	Movies []domain.WatchedEntry `toml:"movie"`
}

// ListWatched prints the watched list, optionally narrowed by a fuzzy filter
func (r *Runner) ListWatched(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(false); err != nil {
		return err
	}

	var entries []domain.WatchedEntry
	for _, res := range r.watchlist.Filter(cmd.String("filter")) {
		entries = append(entries, res.Entry)
	}

	if cmd.Bool("json") {
		if entries == nil {
			entries = []domain.WatchedEntry{}
		}
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No watched movies\n")
	}
	for _, e := range entries {
		r.writePlain("%-10s  %-40s  %-9s  ★ %2d  IMDb %.1f  %d min\n",
			e.ID, styles.Truncate(e.Title, 40), e.Year, e.UserRating, e.ExternalRating, e.RuntimeMinutes)
	}
	return r.writePlainln("%d of %d movies", len(entries), len(r.watchlist.Entries()))
}

// RemoveWatched drops a movie from the watched list
func (r *Runner) RemoveWatched(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return fmt.Errorf("movie ID is required")
	}

	if err := r.ensure(false); err != nil {
		return err
	}

	removed, err := r.watchlist.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("No watched movie with ID %s\n", id)
	}
	return r.writePlain("✓ Removed %s\n", id)
}

// ExportWatched writes the watched list as JSON or TOML
func (r *Runner) ExportWatched(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(false); err != nil {
		return err
	}

	path := cmd.String("output")
	format := strings.ToLower(cmd.String("format"))
	if format == "" {
		format = formatForPath(path)
	}

	entries := r.watchlist.Entries()

	// Encode fully before touching the destination so a rejected export
	// leaves an existing file intact
	var buf bytes.Buffer
	if err := encodeWatched(&buf, format, entries); err != nil {
		return err
	}

	if path == "" {
		if _, err := r.output.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return r.writePlain("✓ Exported %d movies to %s\n", len(entries), path)
}

// ImportWatched adds every entry of a JSON or TOML export that is not yet watched
func (r *Runner) ImportWatched(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.Args().First())
	if path == "" {
		return fmt.Errorf("file is required")
	}

	format := strings.ToLower(cmd.String("format"))
	if format == "" {
		format = formatForPath(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	entries, err := decodeWatched(data, format)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := r.ensure(false); err != nil {
		return err
	}

	added, err := r.watchlist.Import(entries)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Imported %d movies (%d skipped)\n", added, len(entries)-added)
}

// Stats prints the watched list aggregates
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(false); err != nil {
		return err
	}

	sum := r.watchlist.Summary()
	if cmd.Bool("json") {
		return r.writeJSON(sum, true)
	}

	r.writePlain("Movies watched:   %d\n", sum.Count)
	r.writePlain("Avg IMDb rating:  %.2f\n", sum.AvgExternalRating)
	r.writePlain("Avg your rating:  %.2f\n", sum.AvgUserRating)
	return r.writePlain("Avg runtime:      %.2f min\n", sum.AvgRuntimeMinutes)
}

func formatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "json"
}

func encodeWatched(w io.Writer, format string, entries []domain.WatchedEntry) error {
	if entries == nil {
		entries = []domain.WatchedEntry{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	case "toml":
		if err := toml.NewEncoder(w).Encode(watchedFile{Movies: entries}); err != nil {
			return fmt.Errorf("failed to marshal TOML: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want json or toml)", format)
	}
	return nil
}

func decodeWatched(data []byte, format string) ([]domain.WatchedEntry, error) {
	switch format {
	case "json":
		var entries []domain.WatchedEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	case "toml":
		var doc watchedFile
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
		return doc.Movies, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or toml)", format)
	}
}

func watchedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watched",
		Usage: "Manage the watched list",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List watched movies",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Fuzzy filter on title"},
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: r.ListWatched,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie from the watched list",
				ArgsUsage: "<imdb-id>",
				Action:    r.RemoveWatched,
			},
			{
				Name:  "export",
				Usage: "Export the watched list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "json or toml (default: from --output extension, else json)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to file instead of stdout"},
				},
				Action: r.ExportWatched,
			},
			{
				Name:      "import",
				Usage:     "Import movies from a JSON or TOML export",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "json or toml (default: from file extension)"},
				},
				Action: r.ImportWatched,
			},
		},
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show watched list statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: r.Stats,
	}
}
