package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fchimpan/kusa-pong/internal/config"
	"github.com/fchimpan/kusa-pong/internal/logging"
)

// Match is everything a UI needs to host one match.
type Match struct {
	ID     string
	Config config.Config
	Seed   uint64
	Speed  float64
	Names  [2]string
	Logger *slog.Logger
}

type runOptions struct {
	configPath string
	speed      float64
	seed       uint64
	ui         string
	target     int // negative keeps the config value
	names      [2]string
	logFile    string
	logLevel   string
	logFormat  string
}

var errNotTerminal = errors.New("stdout is not a terminal")

func isNotTerminal(err error) bool { return errors.Is(err, errNotTerminal) }

func run(ctx context.Context, deps Deps, opts runOptions) error {
	if deps.LoadConfig == nil {
		return fmt.Errorf("deps.LoadConfig is nil")
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.RunWindow == nil {
		return fmt.Errorf("deps.RunWindow is nil")
	}
	if deps.IsTerminal == nil {
		return fmt.Errorf("deps.IsTerminal is nil")
	}
	if deps.NewMatchID == nil {
		return fmt.Errorf("deps.NewMatchID is nil")
	}

	cfg, err := deps.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.target >= 0 {
		cfg.WinScore = opts.target
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.ui != uiWindow && !deps.IsTerminal() {
		return errNotTerminal
	}

	var logOut io.Writer
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logOut, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	m := Match{
		ID:     deps.NewMatchID(),
		Config: cfg,
		Seed:   opts.seed,
		Speed:  opts.speed,
		Names:  opts.names,
	}
	m.Logger = logger.With(slog.String("match_id", m.ID))
	m.Logger.Info("match start",
		slog.String("ui", opts.ui),
		slog.Uint64("seed", m.Seed),
		slog.Int("win_score", cfg.WinScore),
	)

	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.ui == uiWindow {
		err = deps.RunWindow(m)
	} else {
		err = deps.RunTUI(m)
	}
	if err != nil {
		m.Logger.Error("match aborted", slog.Any("err", err))
		return fmt.Errorf("failed to run %s ui: %w", opts.ui, err)
	}
	m.Logger.Info("match end")
	return nil
}
