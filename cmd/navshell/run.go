package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/navshell/pkg/config"
	"github.com/Dicklesworthstone/navshell/pkg/ui"
	"github.com/Dicklesworthstone/navshell/pkg/watcher"
)

// NewRunCommand creates the run command. It is also what navshell does with
// no subcommand.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive shell",
		Long: `Start the navigation shell in the alternate screen with mouse support.

With --watch the layout is reloaded whenever the config file changes; the
drawer keeps its opened and collapsed state across reloads.`,
		Example: `  navshell run
  navshell run --preset cozy --watch
  navshell --config ./examples/shell.yaml`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	layout, overrides, err := cfg.BuildLayout()
	if err != nil {
		return err
	}

	store := ui.NewStateStore(cfg.StatePath)
	if err := store.Load(); err != nil {
		logger.Warn("state file unreadable, starting fresh", "path", cfg.StatePath, "err", err)
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewModel(ui.Options{
		Title:        cfg.Title,
		Preset:       cfg.Preset,
		Layout:       layout,
		Overrides:    overrides,
		Scale:        cfg.Scale(),
		State:        store,
		Theme:        &theme,
		GlamourStyle: cfg.GlamourStyle(),
		Logger:       logger,
	})
	logger.Info("starting shell", "preset", cfg.Preset, "path", cfg.File)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)

	if cfg.Watch {
		if cfg.File == "" {
			logger.Warn("--watch ignored: no config file")
		} else {
			flags := cmd.Root().PersistentFlags()
			w, err := watcher.New(cfg.File, func() {
				p.Send(reloadConfig(cfg.File, flags))
			}, watcher.WithLogger(logger))
			if err != nil {
				return err
			}
			g.Go(func() error {
				return w.Run(gctx)
			})
		}
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("running shell: %w", err)
		}
		return nil
	})

	runErr := g.Wait()
	if err := store.Save(); err != nil {
		logger.Warn("saving state failed", "path", cfg.StatePath, "err", err)
	}
	return runErr
}

// reloadConfig re-reads the configuration with the same flags and returns
// the message that swaps the running shell's layout.
func reloadConfig(path string, flags *pflag.FlagSet) ui.ConfigReloadedMsg {
	next, err := config.Load(path, flags)
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		return ui.ConfigReloadedMsg{Err: err}
	}
	layout, overrides, err := next.BuildLayout()
	return ui.ConfigReloadedMsg{
		Preset:    next.Preset,
		Title:     next.Title,
		Layout:    layout,
		Overrides: overrides,
		Err:       err,
	}
}
