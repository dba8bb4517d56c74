package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/quadsnap/internal/snap"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndMatchesEngineDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Params() != snap.DefaultParams() {
		t.Fatalf("expected default params %+v, got %+v", snap.DefaultParams(), cfg.Params())
	}
	if cfg.Classifier() != snap.DefaultClassifier() {
		t.Fatalf("expected default classifier, got %+v", cfg.Classifier())
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *res.Config != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if res.File != path {
		t.Fatalf("expected file %q, got %q", path, res.File)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Bindings != DefaultConfig().Bindings {
		t.Fatalf("expected default bindings, got %+v", res.Config.Bindings)
	}
}

func TestLoadFromPath_PartialOverride(t *testing.T) {
	data := strings.Join([]string{
		"bindings:",
		"  left: Mod4-h",
		"menu_inset: 24",
		"similarity_factor: 0.9",
		"log_level: debug",
		"display: \":1\"",
		"",
	}, "\n")
	path := writeConfig(t, data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Bindings.Left != "Mod4-h" {
		t.Fatalf("expected left binding override, got %q", cfg.Bindings.Left)
	}
	if cfg.Bindings.Right != DefaultConfig().Bindings.Right {
		t.Fatalf("expected right binding default, got %q", cfg.Bindings.Right)
	}
	if cfg.MenuInset != 24 || cfg.SimilarityFactor != 0.9 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
	if cfg.Display != ":1" {
		t.Fatalf("expected display :1, got %q", cfg.Display)
	}

	if src := res.SourceOf("bindings.left"); src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source at line 2, got %+v", src)
	}
	if src := res.SourceOf("center_inset"); src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_InvalidSimilarityHasSourceContext(t *testing.T) {
	path := writeConfig(t, "menu_inset: 12\nsimilarity_factor: 1.5\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "similarity_factor" {
		t.Fatalf("expected path similarity_factor, got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected source context, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{name: "empty binding", mutate: func(c *Config) { c.Bindings.Up = " " }, path: "bindings.up"},
		{name: "duplicate binding", mutate: func(c *Config) { c.Bindings.Down = "mod4-mod1-left" }, path: "bindings.down"},
		{name: "undo clashes", mutate: func(c *Config) { c.UndoHotkey = c.Bindings.Right }, path: "undo_hotkey"},
		{name: "negative inset", mutate: func(c *Config) { c.MenuInset = -1 }, path: "menu_inset"},
		{name: "zero similarity", mutate: func(c *Config) { c.SimilarityFactor = 0 }, path: "similarity_factor"},
		{name: "center too large", mutate: func(c *Config) { c.CenterInset = 0.5 }, path: "center_inset"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, path: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}

	t.Run("undo optional", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UndoHotkey = ""
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected empty undo hotkey to be valid, got %v", err)
		}
	})
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Bindings.Up = "Mod4-k"
	cfg.CenterInset = 0.2

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *res.Config != *cfg {
		t.Fatalf("expected %+v, got %+v", cfg, res.Config)
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "menu_inset: 12\n")

	changes := make(chan *LoadResult, 8)
	w := NewWatcher(path, func(res *LoadResult) { changes <- res }, func(err error) {})
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watcher: %v", err)
		}
	}()

	// Keep writing until the watcher is installed and reports the change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case res := <-changes:
			if res.Config.MenuInset != 30 {
				t.Fatalf("expected reloaded menu_inset 30, got %v", res.Config.MenuInset)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("menu_inset: 30\n"), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func TestWatcher_InvalidFileReportsError(t *testing.T) {
	path := writeConfig(t, "menu_inset: 12\n")

	errs := make(chan error, 8)
	w := NewWatcher(path, func(*LoadResult) {}, func(err error) { errs <- err })
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-errs:
			if !strings.Contains(err.Error(), "menu_inset") {
				t.Fatalf("expected menu_inset error, got %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("menu_inset: -4\n"), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload error")
		}
	}
}
