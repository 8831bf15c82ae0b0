package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Defaults(). Written on first run so users have a
// commented starting point to edit.
type fileConfig struct {
	AutoReload bool `yaml:"auto_reload"`
	Editor     struct {
		TabWidth        int  `yaml:"tab_width"`
		ShowLineNumbers bool `yaml:"show_line_numbers"`
		HighlightSyntax bool `yaml:"highlight_syntax"`
	} `yaml:"editor"`
	Theme struct {
		Highlight string `yaml:"highlight"`
		Subtle    string `yaml:"subtle"`
		Error     string `yaml:"error"`
		Success   string `yaml:"success"`
	} `yaml:"theme"`
	History struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"history"`
	Cache struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"cache"`
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	d := Defaults()
	var fc fileConfig
	fc.AutoReload = d.AutoReload
	fc.Editor.TabWidth = d.Editor.TabWidth
	fc.Editor.ShowLineNumbers = d.Editor.ShowLineNumbers
	fc.Editor.HighlightSyntax = d.Editor.HighlightSyntax
	fc.Theme.Highlight = d.Theme.Highlight
	fc.Theme.Subtle = d.Theme.Subtle
	fc.Theme.Error = d.Theme.Error
	fc.Theme.Success = d.Theme.Success
	fc.History.Enabled = d.History.Enabled
	fc.Cache.Enabled = d.Cache.Enabled

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}

	header := []byte("# texel configuration\n# See https://github.com/zjrosen/texel for documentation.\n")
	if err := os.WriteFile(path, append(header, data...), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
