// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/entalpic/siesta/cmd/application"
)

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	var latest bool
	cmd := &cobra.Command{
		Use:     "version",
		GroupID: "setup",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "siesta version %s\n", app.Version())
			fmt.Fprintf(out, "commit: %s\n", app.Commit())
			fmt.Fprintf(out, "built: %s\n", app.Date())
			fmt.Fprintf(out, "built by: %s\n", app.BuiltBy())
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			if !latest {
				return nil
			}

			rel, err := app.LatestRelease(cmd.Context())
			if err != nil {
				app.Messenger().Warn("Could not check the latest release.")
				return err
			}
			if rel == nil {
				app.Messenger().Warn("No release published yet.")
				return nil
			}
			fmt.Fprintf(out, "latest release: %s (%s)\n", rel.TagName, rel.HTMLURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "also show the latest published release")
	return cmd
}
