// Package cmd contains the CLI entry points.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/texel/internal/app"
	"github.com/zjrosen/texel/internal/config"
	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/history"
	"github.com/zjrosen/texel/internal/log"
	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/tracing"
	"github.com/zjrosen/texel/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "texel [file]",
	Short:   "A terminal LaTeX editor with structural text objects",
	Long: `A vim-flavored terminal editor for LaTeX that understands the document's
structure: quotes, math, macros, and environments are first-class text
objects you can select, delete, yank, and change.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/texel/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write debug logs to texel.log")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the buffer when the file changes on disk")
	rootCmd.Flags().Bool("no-history", false,
		"disable per-file cursor position history")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("editor.show_line_numbers", defaults.Editor.ShowLineNumbers)
	viper.SetDefault("editor.highlight_syntax", defaults.Editor.HighlightSyntax)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("history.enabled", defaults.History.Enabled)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .texel/config.yaml (current directory)
		// 2. ~/.config/texel/config.yaml (user config)
		if _, err := os.Stat(".texel/config.yaml"); err == nil {
			viper.SetConfigFile(".texel/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "texel"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .texel/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".texel/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.Init("texel.log")
		if err != nil {
			return fmt.Errorf("initializing log: %w", err)
		}
		defer cleanup()
	}

	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}

	styles.Apply(styles.Theme{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	})

	var path, text string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text = string(data)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	svc := resolve.NewService(document.NewSnapshot(text),
		resolve.WithCache(cfg.Cache.Enabled),
		resolve.WithTracer(provider.Tracer()),
	)

	opts := app.Options{}
	if cfg.History.Enabled && path != "" {
		histPath := cfg.History.Path
		if histPath == "" {
			histPath, err = history.DefaultPath()
			if err != nil {
				return fmt.Errorf("resolving history path: %w", err)
			}
		}
		store, err := history.Open(histPath)
		if err != nil {
			// History is a convenience; run without it rather than fail.
			log.ErrorErr(log.CatHistory, "opening history store", err)
		} else {
			opts.History = store
			defer func() { _ = store.Close() }()
		}
	}

	zone.NewGlobal()
	model := app.New(cfg, path, text, svc, opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
