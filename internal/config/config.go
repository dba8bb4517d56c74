package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/quadsnap/internal/snap"
)

// Bindings maps each snap direction to an xgbutil key sequence.
type Bindings struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
}

// Map returns the bindings keyed by direction.
func (b Bindings) Map() map[snap.Direction]string {
	return map[snap.Direction]string{
		snap.Left:  b.Left,
		snap.Right: b.Right,
		snap.Up:    b.Up,
		snap.Down:  b.Down,
	}
}

// Config holds the application configuration.
type Config struct {
	Bindings         Bindings `yaml:"bindings"`
	UndoHotkey       string   `yaml:"undo_hotkey"`
	MenuInset        float64  `yaml:"menu_inset"`
	SimilarityFactor float64  `yaml:"similarity_factor"`
	CenterInset      float64  `yaml:"center_inset"`
	LogLevel         string   `yaml:"log_level"`
	Display          string   `yaml:"display,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Bindings: Bindings{
			Left:  "Mod4-Mod1-Left",
			Right: "Mod4-Mod1-Right",
			Up:    "Mod4-Mod1-Up",
			Down:  "Mod4-Mod1-Down",
		},
		UndoHotkey:       "Mod4-Mod1-z",
		MenuInset:        snap.DefaultMenuInset,
		SimilarityFactor: snap.DefaultSimilarityFactor,
		CenterInset:      snap.DefaultCenterInset,
		LogLevel:         "info",
	}
}

// Params returns the layout constants for the engine.
func (c *Config) Params() snap.Params {
	return snap.Params{
		MenuInset:   c.MenuInset,
		CenterInset: c.CenterInset,
	}
}

// Classifier returns the classifier configured by similarity_factor.
func (c *Config) Classifier() snap.Classifier {
	return snap.Classifier{SimilarityFactor: c.SimilarityFactor}
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates the configuration and writes it to path as YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	seen := make(map[string]string, 5)
	check := func(path, seq string) error {
		seq = strings.TrimSpace(seq)
		if seq == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("must not be empty")}
		}
		key := strings.ToLower(seq)
		if other, ok := seen[key]; ok {
			return &ValidationError{Path: path, Err: fmt.Errorf("%q is already bound by %s", seq, other)}
		}
		seen[key] = path
		return nil
	}

	if err := check("bindings.left", c.Bindings.Left); err != nil {
		return err
	}
	if err := check("bindings.right", c.Bindings.Right); err != nil {
		return err
	}
	if err := check("bindings.up", c.Bindings.Up); err != nil {
		return err
	}
	if err := check("bindings.down", c.Bindings.Down); err != nil {
		return err
	}
	// The undo hotkey is optional.
	if strings.TrimSpace(c.UndoHotkey) != "" {
		if err := check("undo_hotkey", c.UndoHotkey); err != nil {
			return err
		}
	}

	if c.MenuInset < 0 {
		return &ValidationError{Path: "menu_inset", Err: fmt.Errorf("must be >= 0 (got %g)", c.MenuInset)}
	}
	if c.SimilarityFactor <= 0 || c.SimilarityFactor > 1 {
		return &ValidationError{Path: "similarity_factor", Err: fmt.Errorf("must be in (0, 1] (got %g)", c.SimilarityFactor)}
	}
	if c.CenterInset < 0 || c.CenterInset >= 0.5 {
		return &ValidationError{Path: "center_inset", Err: fmt.Errorf("must be in [0, 0.5) (got %g)", c.CenterInset)}
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warning", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("must be one of debug, info, warning, error (got %q)", c.LogLevel)}
	}

	return nil
}
