package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/popcorn/internal/config"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/log"
	"github.com/mmcdole/popcorn/internal/omdb"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
// Services are wired lazily so commands that never touch the network or the
// database (config init, --version) do not open either.
type Runner struct {
	configPath string
	config     *config.Config
	repo       domain.MovieRepository
	store      *store.Store
	search     *service.SearchService
	detail     *service.DetailService
	watchlist  *service.WatchlistService
	logger     *slog.Logger
	output     io.Writer
	errOutput  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *config.Config
	Repo      domain.MovieRepository
	Logger    *slog.Logger
	Output    io.Writer
	ErrOutput io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	return &Runner{
		config:    opts.Config,
		repo:      opts.Repo,
		logger:    opts.Logger,
		output:    opts.Output,
		errOutput: opts.ErrOutput,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, showCommand, rateCommand, watchedCommand, statsCommand, configCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")
	return ctx, nil
}

// after releases the database so the next run (or another process) can open it
func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	r.search = nil
	r.detail = nil
	r.watchlist = nil
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

func (r *Runner) loadConfig() (*config.Config, error) {
	if r.config != nil {
		return r.config, nil
	}
	cfg, err := config.LoadConfig(r.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	r.config = cfg
	return cfg, nil
}

// ensure wires config, logger, store, OMDb client and services.
// Interactive sessions log to the configured file; subcommands log to stderr.
func (r *Runner) ensure(interactive bool) error {
	if r.watchlist != nil {
		return nil
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	if r.logger == nil {
		if interactive {
			logger, err := log.SetupLogger(&cfg.Logging)
			if err != nil {
				logger = log.NullLogger()
			}
			slog.SetDefault(logger)
			r.logger = logger
		} else {
			r.logger = log.NewConsoleLogger(r.errOutput, cfg.Logging.Level)
		}
	}

	st, err := store.Open(cfg.Storage.Path, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open watched list: %w", err)
	}
	r.store = st

	if r.repo == nil {
		if !cfg.HasAPIKey() {
			r.logger.Warn("no OMDb API key configured, every lookup will fail",
				"hint", "set omdb.api_key or POPCORN_OMDB_API_KEY")
		}
		r.repo = omdb.NewClient(cfg.OMDb.BaseURL, cfg.OMDb.APIKey, r.logger,
			omdb.WithTimeout(cfg.OMDb.Timeout),
			omdb.WithRateLimit(cfg.OMDb.RequestsPerSecond),
		)
	}

	r.search = service.NewSearchService(r.repo, r.logger,
		service.WithMinQueryLength(cfg.Search.MinQueryLength),
		service.WithRanking(cfg.Search.RankResults),
	)
	r.detail = service.NewDetailService(r.repo, r.logger)
	r.watchlist = service.NewWatchlistService(st, r.logger)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
