package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if b := raw.Bindings; b != nil {
		setString(&cfg.Bindings.Left, b.Left)
		setString(&cfg.Bindings.Right, b.Right)
		setString(&cfg.Bindings.Up, b.Up)
		setString(&cfg.Bindings.Down, b.Down)
	}
	setString(&cfg.UndoHotkey, raw.UndoHotkey)
	setFloat(&cfg.MenuInset, raw.MenuInset)
	setFloat(&cfg.SimilarityFactor, raw.SimilarityFactor)
	setFloat(&cfg.CenterInset, raw.CenterInset)
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.Display, raw.Display)

	return cfg
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
