package config

// RawBindings mirrors Bindings with optional fields so a file can override a
// single direction.
type RawBindings struct {
	Left  *string `yaml:"left"`
	Right *string `yaml:"right"`
	Up    *string `yaml:"up"`
	Down  *string `yaml:"down"`
}

// RawConfig is the on-disk shape of the config file. Nil fields keep their
// default.
type RawConfig struct {
	Bindings         *RawBindings `yaml:"bindings"`
	UndoHotkey       *string      `yaml:"undo_hotkey"`
	MenuInset        *float64     `yaml:"menu_inset"`
	SimilarityFactor *float64     `yaml:"similarity_factor"`
	CenterInset      *float64     `yaml:"center_inset"`
	LogLevel         *string      `yaml:"log_level"`
	Display          *string      `yaml:"display"`
}
