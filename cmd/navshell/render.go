package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/navshell/pkg/config"
	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/ui"
)

// Fallback frame size when stdout is not a terminal.
const (
	defaultRenderWidth  = 100
	defaultRenderHeight = 30
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var (
		width      int
		height     int
		breakpoint string
		opened     bool
		collapsed  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one frame of the shell",
		Long: `Lay out the shell once and print the frame without starting the
interactive program. Colors are dropped when stdout is not a terminal.

The size defaults to the terminal size. --breakpoint picks a width that
falls on that breakpoint instead.`,
		Example: `  navshell render --width 120 --height 30
  navshell render --breakpoint xs --opened
  navshell render --preset fixed --collapsed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			out := cmd.OutOrStdout()

			tty := false
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				tty = true
				if w, h, err := term.GetSize(int(f.Fd())); err == nil {
					if width <= 0 {
						width = w
					}
					if height <= 0 {
						height = h
					}
				}
			}

			if breakpoint != "" {
				bp, err := model.ParseBreakpoint(breakpoint)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("width") {
					width = breakpointColumns(bp, cfg.Scale())
				}
			}
			if width <= 0 {
				width = defaultRenderWidth
			}
			if height <= 0 {
				height = defaultRenderHeight
			}

			layout, overrides, err := cfg.BuildLayout()
			if err != nil {
				return err
			}

			theme := ui.PlainTheme(out)
			style := config.ThemeNoTTY
			if tty {
				theme = ui.DefaultTheme(lipgloss.NewRenderer(out))
				style = cfg.GlamourStyle()
			}

			state := ui.NewStateStore("")
			state.Update(func(s *ui.ShellState) {
				s.Opened = opened
				s.Collapsed = collapsed
			})

			frame := ui.RenderFrame(ui.Options{
				Title:        cfg.Title,
				Preset:       cfg.Preset,
				Layout:       layout,
				Overrides:    overrides,
				Scale:        cfg.Scale(),
				State:        state,
				Theme:        &theme,
				GlamourStyle: style,
				Logger:       getLogger(cmd.Context()),
			}, width, height)
			_, err = fmt.Fprintln(out, frame)
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Frame width in columns (default: terminal width)")
	cmd.Flags().IntVar(&height, "height", 0, "Frame height in rows (default: terminal height)")
	cmd.Flags().StringVar(&breakpoint, "breakpoint", "", "Render at a width on this breakpoint (xs|sm|md|lg|xl)")
	cmd.Flags().BoolVar(&opened, "opened", false, "Render with the drawer opened")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Render with the drawer collapsed")

	return cmd
}

// breakpointColumns returns a terminal width that resolves to bp: the
// breakpoint's threshold in columns, or one column short of sm for xs.
func breakpointColumns(bp model.Breakpoint, scale model.Scale) int {
	if bp == model.XS {
		return scale.Cells(model.SM.Min()) - 1
	}
	return scale.Cells(bp.Min())
}
