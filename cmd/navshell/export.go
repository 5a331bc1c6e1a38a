package main

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/navshell/pkg/export"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		format    string
		out       string
		scale     float64
		collapsed bool
		serve     bool
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a layout diagram (SVG or PNG)",
		Long: `Draw the configured layout at every breakpoint: the viewport, the drawer
at its anchor and width, and the variant in effect.

With --serve the diagram is written with an index.html next to it and the
directory is served for viewing in a browser until interrupted.`,
		Example: `  navshell export --out layout.svg
  navshell export --preset cozy --format png --out cozy.png
  navshell export --out site/layout.svg --serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			logger := getLogger(cmd.Context())

			layout, _, err := cfg.BuildLayout()
			if err != nil {
				return err
			}
			if err := export.SaveSnapshot(export.SnapshotOptions{
				Path:   out,
				Layout: layout,
				Format: format,
				Options: export.Options{
					Title:     fmt.Sprintf("%s (%s)", cfg.Title, cfg.Preset),
					Scale:     scale,
					Collapsed: collapsed,
				},
			}); err != nil {
				return err
			}
			logger.Info("exported layout", "preset", cfg.Preset, "path", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)

			if !serve {
				return nil
			}

			dir := filepath.Dir(out)
			if err := export.WriteIndex(dir, cfg.Title); err != nil {
				return err
			}
			if addr == "" {
				port, err := export.FindAvailablePort(export.PreviewPortRangeStart, export.PreviewPortRangeEnd)
				if err != nil {
					return err
				}
				addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
			}
			srv := export.NewPreviewServer(dir, addr, logger)
			if err := srv.Listen(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s at %s (Ctrl+C to stop)\n", dir, srv.URL())
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "svg or png (default: from the --out extension)")
	cmd.Flags().StringVarP(&out, "out", "o", "navshell-layout.svg", "Output file")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Diagram pixels per layout pixel (default 0.25)")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Draw collapsible drawers at their collapsed width")
	cmd.Flags().BoolVar(&serve, "serve", false, "Serve the output directory after exporting")
	cmd.Flags().StringVar(&addr, "addr", "", "Preview server address (default: first free port from 9000)")

	return cmd
}
