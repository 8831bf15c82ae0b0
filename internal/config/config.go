// Package config provides configuration types, defaults, and persistence
// for texel.
package config

import (
	"fmt"

	"github.com/zjrosen/texel/internal/tracing"
)

// Config holds all configuration options for texel.
type Config struct {
	AutoReload bool           `mapstructure:"auto_reload"`
	Editor     EditorConfig   `mapstructure:"editor"`
	Theme      ThemeConfig    `mapstructure:"theme"`
	History    HistoryConfig  `mapstructure:"history"`
	Cache      CacheConfig    `mapstructure:"cache"`
	Tracing    tracing.Config `mapstructure:"tracing"`
}

// EditorConfig holds editor behavior options.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `mapstructure:"tab_width"`

	// ShowLineNumbers toggles the line number gutter.
	ShowLineNumbers bool `mapstructure:"show_line_numbers"`

	// HighlightSyntax toggles LaTeX syntax highlighting.
	HighlightSyntax bool `mapstructure:"highlight_syntax"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Highlight is the color for the active selection.
	Highlight string `mapstructure:"highlight"`

	// Subtle is the color for secondary UI text.
	Subtle string `mapstructure:"subtle"`

	// Error is the color for error messages.
	Error string `mapstructure:"error"`

	// Success is the color for confirmation messages.
	Success string `mapstructure:"success"`
}

// HistoryConfig controls the per-file cursor history store.
type HistoryConfig struct {
	// Enabled toggles cursor position persistence.
	Enabled bool `mapstructure:"enabled"`

	// Path overrides the database location. Empty means the default
	// state directory.
	Path string `mapstructure:"path"`
}

// CacheConfig controls resolution result caching.
type CacheConfig struct {
	// Enabled toggles the read-through resolution cache.
	Enabled bool `mapstructure:"enabled"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Editor: EditorConfig{
			TabWidth:        4,
			ShowLineNumbers: true,
			HighlightSyntax: true,
		},
		Theme: ThemeConfig{
			Highlight: "#7D56F4",
			Subtle:    "#696969",
			Error:     "#FF6B6B",
			Success:   "#73F59F",
		},
		History: HistoryConfig{Enabled: true},
		Cache:   CacheConfig{Enabled: true},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for values that would break the UI.
func Validate(cfg Config) error {
	if cfg.Editor.TabWidth < 1 || cfg.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", cfg.Editor.TabWidth)
	}
	return nil
}
