package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/navshell/pkg/config"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var (
		force      bool
		defaults   bool
		accessible bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a navshell.yaml",
		Long: `Create a navshell.yaml in the given directory (default: current).

An interactive form asks for the preset and the header title; --defaults
skips it and writes the values from flags, environment and defaults.`,
		Example: `  navshell init
  navshell init --defaults --preset cozy --title "My App"
  navshell init ./demo --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.DefaultFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", path)
			}

			base := getConfig(cmd.Context())
			out := &config.Config{
				Preset:     base.Preset,
				Title:      base.Title,
				CellPixels: base.CellPixels,
				RowPixels:  base.RowPixels,
				Theme:      base.Theme,
				Layout:     base.Layout,
			}

			if !defaults {
				if err := initForm(out, accessible).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
						return nil
					}
					return fmt.Errorf("init form: %w", err)
				}
			}

			if err := out.Validate(); err != nil {
				return err
			}
			if err := config.Write(path, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (preset %s)\n", path, out.Preset)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing navshell.yaml")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Skip the form and write current settings")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use the screen-reader friendly form")

	return cmd
}

// initForm asks for the preset, title and theme, writing answers into c.
func initForm(c *config.Config, accessible bool) *huh.Form {
	presets := make([]huh.Option[string], 0, len(preset.Names()))
	for _, name := range preset.Names() {
		presets = append(presets, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Layout preset").
				Description("Drawer anchor, width and variant per breakpoint").
				Options(presets...).
				Value(&c.Preset),
			huh.NewInput().
				Title("Header title").
				Value(&c.Title).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(config.ThemeAuto, config.ThemeDark, config.ThemeLight, config.ThemeNoTTY)...).
				Value(&c.Theme),
		),
	).WithAccessible(accessible)
}
