// Package config owns the operator's persisted preferences. The shell reads
// them at startup and writes them back when `set` changes one.
package config

// Settings are the preferences the shell persists between runs. Zero values
// mean "unset"; Defaults fills the ones that need a value.
type Settings struct {
	// Editor is the command used to open downloaded logs, split on
	// whitespace into program + arguments. $EDITOR is the fallback.
	Editor string `yaml:"editor,omitempty"`
	// Terminal is the command used by `exec -t` to open a shell in its own
	// window, e.g. "xterm -e".
	Terminal string `yaml:"terminal,omitempty"`
	// RangeSeparator is printed between objects when a command runs over a
	// range. Supports {name}, {namespace} and {time} placeholders.
	RangeSeparator string `yaml:"range_separator,omitempty"`
	// EditMode is the readline editing style, "emacs" or "vi".
	EditMode string `yaml:"edit_mode,omitempty"`
	// LogLevel filters diagnostic logging: debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Defaults returns the settings used before any config file is read.
func Defaults() Settings {
	return Settings{
		RangeSeparator: "---",
		EditMode:       "emacs",
		LogLevel:       "warn",
	}
}

// merge overlays file-provided values onto base. Only set fields override.
func merge(base, overlay Settings) Settings {
	merged := base
	if overlay.Editor != "" {
		merged.Editor = overlay.Editor
	}
	if overlay.Terminal != "" {
		merged.Terminal = overlay.Terminal
	}
	if overlay.RangeSeparator != "" {
		merged.RangeSeparator = overlay.RangeSeparator
	}
	if overlay.EditMode != "" {
		merged.EditMode = overlay.EditMode
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	return merged
}
