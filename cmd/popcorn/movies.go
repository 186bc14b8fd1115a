package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/popcorn/internal/service"
	"github.com/urfave/cli/v3"
)

// Search prints the movies matching the query arguments
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	if err := r.ensure(false); err != nil {
		return err
	}
	if !r.search.ShouldQuery(query) {
		return fmt.Errorf("query must be at least %d characters", r.config.Search.MinQueryLength)
	}

	results, err := r.search.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	for _, m := range results {
		mark := " "
		if r.watchlist.Contains(m.ID) {
			mark = "✓"
		}
		r.writePlain("%s %-10s  %-9s  %s\n", mark, m.ID, m.Year, m.Title)
	}
	return r.writePlainln("Found %d results", len(results))
}

// Show prints the full metadata for one movie
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return fmt.Errorf("movie ID is required")
	}

	if err := r.ensure(false); err != nil {
		return err
	}

	d, err := r.detail.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(d, true)
	}

	r.writePlain("%s\n", d.Heading())
	r.writePlain("%s\n\n", strings.Repeat("─", len([]rune(d.Heading()))))
	for _, row := range [][2]string{
		{"Genre", d.Genre},
		{"Released", d.ReleaseDate},
		{"Runtime", d.Runtime},
		{"Director", d.Director},
		{"Actors", d.Actors},
	} {
		if row[1] != "" {
			r.writePlain("%-10s %s\n", row[0]+":", row[1])
		}
	}
	if d.ExternalRating > 0 {
		r.writePlain("%-10s %.1f\n", "IMDb:", d.ExternalRating)
	}
	if d.Plot != "" {
		r.writePlainln("%s", d.Plot)
	}
	if e, ok := r.watchlist.Find(d.ID); ok {
		return r.writePlainln("You rated this movie. Rating: %d", e.UserRating)
	}
	return nil
}

// Rate fetches a movie and adds it to the watched list with the given rating
func (r *Runner) Rate(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().Get(0))
	if id == "" {
		return fmt.Errorf("movie ID is required")
	}
	rating, err := strconv.Atoi(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("rating must be a number between 1 and 10")
	}

	if err := r.ensure(false); err != nil {
		return err
	}

	sel := service.NewSelection(r.watchlist, r.logger)
	sel.Select(id)
	if err := sel.SetRating(rating); err != nil {
		return err
	}

	d, err := r.detail.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", id, err)
	}

	entry, err := sel.ConfirmAdd(d)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Added %s (%s) with rating %d\n", entry.Title, entry.Year, entry.UserRating)
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search movies by title",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: r.Search,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a movie",
		ArgsUsage: "<imdb-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: r.Show,
	}
}

func rateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rate",
		Usage:     "Rate a movie and add it to the watched list",
		ArgsUsage: "<imdb-id> <1-10>",
		Action:    r.Rate,
	}
}
