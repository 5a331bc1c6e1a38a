package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// NewPresetsCommand creates the presets command group.
func NewPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and inspect layout presets",
	}
	cmd.AddCommand(newPresetsListCommand())
	cmd.AddCommand(newPresetsShowCommand())
	return cmd
}

func newPresetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preset names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range preset.Names() {
				layout, err := preset.Build(name, model.Overrides{})
				if err != nil {
					return err
				}
				marker := " "
				if name == cfg.Preset {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, name, layout.NavAnchor, layout.NavVariant)
			}
			return tw.Flush()
		},
	}
}

func newPresetsShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a preset as YAML",
		Long: `Print the layout a preset resolves to, with the layout section of the
config applied on top. The name defaults to the configured preset.`,
		Example: `  navshell presets show cozy
  navshell presets show fixed --raw`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return preset.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			name := cfg.Preset
			if len(args) > 0 {
				name = args[0]
			}

			var overrides model.Overrides
			if !raw {
				var err error
				if overrides, err = cfg.Overrides(); err != nil {
					return err
				}
			}
			layout, err := preset.Build(name, overrides)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(layout)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", name, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Ignore the config's layout overrides")

	return cmd
}
