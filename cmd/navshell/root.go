package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/navshell/pkg/config"
	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
	"github.com/Dicklesworthstone/navshell/pkg/version"
)

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command. Without a subcommand it
// starts the interactive shell.
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "navshell",
		Short: "navshell - responsive navigation drawer shell",
		Long: `navshell is a terminal application shell with a navigation drawer whose
layout (anchor, width, variant, collapsing, header and footer placement)
comes from a named preset plus overrides in navshell.yaml.

The layout adapts to the terminal width through the xs/sm/md/lg/xl
breakpoints.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logCloser = closer

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose && cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE:          runShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./navshell.yaml)")
	rootCmd.PersistentFlags().String("preset", "", "Layout preset (default|fixed|content-based|cozy|mui-treasury)")
	rootCmd.PersistentFlags().String("title", "", "Header title")
	rootCmd.PersistentFlags().Int("cell-pixels", 0, "Layout pixels per terminal column")
	rootCmd.PersistentFlags().Int("row-pixels", 0, "Layout pixels per terminal row")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (the TUI owns stdout)")
	rootCmd.PersistentFlags().String("state", "", "Path to the saved drawer state")
	rootCmd.PersistentFlags().String("theme", "", "Color theme (auto|dark|light|notty)")
	rootCmd.PersistentFlags().Bool("watch", false, "Reload the layout when the config file changes")

	_ = rootCmd.RegisterFlagCompletionFunc("preset", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return preset.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ThemeAuto, config.ThemeDark, config.ThemeLight, config.ThemeNoTTY}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewPresetsCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Preset:     config.DefaultPreset,
		Title:      config.DefaultTitle,
		CellPixels: model.DefaultCellPixels,
		RowPixels:  model.DefaultRowPixels,
		Theme:      config.DefaultTheme,
	}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// newLogger builds the slog logger. The shell draws on stdout, so logs go
// to --log-file or nowhere.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
