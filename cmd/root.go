package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fchimpan/kusa-pong/internal/config"
)

type Deps struct {
	LoadConfig func(path string) (config.Config, error)
	RunTUI     func(m Match) error
	RunWindow  func(m Match) error
	IsTerminal func() bool
	NewMatchID func() string
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		RunTUI:     defaultRunTUI,
		RunWindow:  defaultRunWindow,
		IsTerminal: func() bool { return term.FromEnv().IsTerminalOutput() },
		NewMatchID: uuid.NewString,
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

const (
	uiTerminal = "tui"
	uiWindow   = "window"
)

func NewRootCmd(deps Deps) *cobra.Command {
	var opts runOptions

	c := &cobra.Command{
		Use:          "kusa-pong",
		Short:        "Two-player paddle-and-ball game for your terminal (or a window)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.speed <= 0 {
				return fmt.Errorf("--speed must be > 0")
			}
			if opts.ui != uiTerminal && opts.ui != uiWindow {
				return fmt.Errorf("--ui must be %q or %q, got %q", uiTerminal, uiWindow, opts.ui)
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(deps.Now().UnixNano())
			}
			if !cmd.Flags().Changed("target") {
				opts.target = -1
			}

			if err := run(cmd.Context(), deps, opts); err != nil {
				switch {
				case config.IsValidation(err):
					fmt.Fprintln(deps.Stderr, "hint: check the values in your --config file")
				case isNotTerminal(err):
					fmt.Fprintln(deps.Stderr, "hint: run in an interactive terminal, or use `--ui window`")
				}
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file (default: built-in settings)")
	c.Flags().Float64VarP(&opts.speed, "speed", "s", 1.0, "game speed multiplier (1.0 is normal)")
	c.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for serves (default: current time)")
	c.Flags().StringVar(&opts.ui, "ui", uiTerminal, "user interface: tui or window")
	c.Flags().IntVarP(&opts.target, "target", "t", 0, "points needed to win; 0 plays forever (default: from config)")
	c.Flags().StringVar(&opts.names[0], "left", "", "name of the left player")
	c.Flags().StringVar(&opts.names[1], "right", "", "name of the right player")
	c.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (default: no logs)")
	c.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	c.Flags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}
