package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fchimpan/kusa-pong/internal/config"
)

// testDeps returns deps that fail the test if a UI is started.
func testDeps(t *testing.T) Deps {
	t.Helper()
	return Deps{
		LoadConfig: func(path string) (config.Config, error) { return config.Default(), nil },
		RunTUI: func(m Match) error {
			t.Fatalf("RunTUI should not be called in this test")
			return nil
		},
		RunWindow: func(m Match) error {
			t.Fatalf("RunWindow should not be called in this test")
			return nil
		},
		IsTerminal: func() bool { return true },
		NewMatchID: func() string { return "match-1" },
	}
}

func defaultRunOptions() runOptions {
	return runOptions{speed: 1, seed: 123, ui: uiTerminal, target: -1, logLevel: "info", logFormat: "text"}
}

func TestRun_Success_TUI(t *testing.T) {
	t.Parallel()

	var calledTUI bool
	deps := testDeps(t)
	deps.RunTUI = func(m Match) error {
		calledTUI = true
		if m.ID != "match-1" {
			t.Fatalf("match id mismatch: got %q", m.ID)
		}
		if m.Seed != 123 {
			t.Fatalf("seed mismatch: got %d", m.Seed)
		}
		if m.Speed != 1.0 {
			t.Fatalf("speed mismatch: got %v", m.Speed)
		}
		if m.Config.WinScore != config.Default().WinScore {
			t.Fatalf("win score should come from config, got %d", m.Config.WinScore)
		}
		if m.Logger == nil {
			t.Fatalf("logger should be set")
		}
		return nil
	}

	if err := run(context.Background(), deps, defaultRunOptions()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !calledTUI {
		t.Fatalf("RunTUI not called")
	}
}

func TestRun_Success_Window(t *testing.T) {
	t.Parallel()

	var calledWindow bool
	deps := testDeps(t)
	// A window doesn't need a terminal.
	deps.IsTerminal = func() bool { return false }
	deps.RunWindow = func(m Match) error {
		calledWindow = true
		if m.Names != [2]string{"alice", "bob"} {
			t.Fatalf("names mismatch: got %v", m.Names)
		}
		if m.Config.WinScore != 3 {
			t.Fatalf("target override not applied: got %d", m.Config.WinScore)
		}
		return nil
	}

	opts := defaultRunOptions()
	opts.ui = uiWindow
	opts.names = [2]string{"alice", "bob"}
	opts.target = 3
	if err := run(context.Background(), deps, opts); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !calledWindow {
		t.Fatalf("RunWindow not called")
	}
}

func TestRun_ConfigError(t *testing.T) {
	t.Parallel()

	want := errors.New("no such file")
	deps := testDeps(t)
	deps.LoadConfig = func(path string) (config.Config, error) {
		if path != "pong.yaml" {
			t.Fatalf("config path mismatch: got %q", path)
		}
		return config.Config{}, want
	}

	opts := defaultRunOptions()
	opts.configPath = "pong.yaml"
	err := run(context.Background(), deps, opts)
	if !errors.Is(err, want) {
		t.Fatalf("expected wrapped error %v, got %v", want, err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	opts := defaultRunOptions()
	opts.target = 0
	deps := testDeps(t)
	deps.LoadConfig = func(string) (config.Config, error) {
		cfg := config.Default()
		cfg.Ball.MinSpeed = cfg.Ball.MaxSpeed + 1
		return cfg, nil
	}
	err := run(context.Background(), deps, opts)
	if !config.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRun_NotTerminal(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	deps.IsTerminal = func() bool { return false }

	err := run(context.Background(), deps, defaultRunOptions())
	if !isNotTerminal(err) {
		t.Fatalf("expected not-a-terminal error, got %v", err)
	}
}

func TestRun_UIError(t *testing.T) {
	t.Parallel()

	want := errors.New("boom")
	deps := testDeps(t)
	deps.RunTUI = func(Match) error { return want }

	err := run(context.Background(), deps, defaultRunOptions())
	if !errors.Is(err, want) {
		t.Fatalf("expected wrapped error %v, got %v", want, err)
	}
}

func TestRun_WritesLogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pong.log")
	deps := testDeps(t)
	deps.RunTUI = func(m Match) error {
		m.Logger.Info("hello from ui")
		return nil
	}

	opts := defaultRunOptions()
	opts.logFile = path
	if err := run(context.Background(), deps, opts); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"match start", "hello from ui", "match_id=match-1", "match end"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in log, got:\n%s", want, data)
		}
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, testDeps(t), defaultRunOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_MissingDeps(t *testing.T) {
	t.Parallel()

	if err := run(context.Background(), Deps{}, defaultRunOptions()); err == nil {
		t.Fatalf("expected error for missing deps")
	}
}
