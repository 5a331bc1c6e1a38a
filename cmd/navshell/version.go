package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/navshell/pkg/updater"
	"github.com/Dicklesworthstone/navshell/pkg/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var check bool
	releaseURL := updater.LatestReleaseURL

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, version.String())
			if !check {
				return nil
			}

			tag, url, err := updater.CheckForUpdates(cmd.Context(), releaseURL, version.Version)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}
			if tag == "" {
				_, _ = fmt.Fprintln(out, "Up to date.")
				return nil
			}
			_, _ = fmt.Fprintf(out, "Update available: %s\n%s\n", tag, url)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	cmd.Flags().StringVar(&releaseURL, "release-url", releaseURL, "Release API endpoint")
	_ = cmd.Flags().MarkHidden("release-url")

	return cmd
}
