// Package deps provides the show-deps command.
package deps

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/pkg/deps"
)

// NewCommand creates the show-deps command.
func NewCommand(_ application.Application) *cobra.Command {
	var asPip bool
	cmd := &cobra.Command{
		Use:     "show-deps",
		GroupID: "setup",
		Short:   "Show the recommended documentation dependencies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := deps.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asPip {
				_, err = fmt.Fprintln(out, strings.Join(manifest.All(), " "))
				return err
			}
			if _, err := fmt.Fprintln(out, "Dependencies:"); err != nil {
				return err
			}
			for _, scope := range manifest.Scopes {
				if _, err := fmt.Fprintf(out, "  • %s: %s\n", scope.Name, strings.Join(scope.Packages, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asPip, "as-pip", false, "print a single space-separated list for pip install")
	return cmd
}
