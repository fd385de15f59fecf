// Package pat provides the set-github-pat command.
package pat

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/pkg/errors"
)

// NewCommand creates the set-github-pat command.
func NewCommand(app application.Application) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:     "set-github-pat",
		GroupID: "setup",
		Short:   "Store a GitHub Personal Access Token in the OS keyring",
		Long: `Store a GitHub Personal Access Token (PAT) in the OS keyring.

A PAT is needed to fetch the latest boilerplate from the siesta repository.
To create one:

  1. Go to Settings > Developer settings > Personal access tokens (fine-grained)
     > Generate new token.
  2. Name it siesta and set Entalpic as resource owner.
  3. Only select the siesta repository.
  4. Set Repository Permissions to Contents: Read and Metadata: Read.

SIESTA_GITHUB_PAT (or GITHUB_TOKEN) takes precedence over the keyring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := app.Messenger()
			m.Warn("Run `siesta set-github-pat --help` if you're not sure how to generate a PAT.")

			if token == "" {
				var err error
				token, err = app.ReadSecret("Enter your GitHub PAT (hidden)")
				if err != nil {
					return err
				}
			}
			if token == "" {
				return errors.NewConfigError("set-github-pat", "no PAT given", errors.ErrInvalidInput)
			}

			if !m.Confirm(fmt.Sprintf("Are you sure you want to set the GitHub PAT to %s?", mask(token))) {
				m.Warn("Aborting.")
				return nil
			}
			store := app.Tokens()
			if store == nil {
				return errors.NewConfigError("set-github-pat", "no token store available", nil)
			}
			if err := store.Store(token); err != nil {
				return err
			}
			m.Success("GitHub PAT set. You can now use `siesta docs init`.")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "pat", "", "the token (prompted for when empty)")
	return cmd
}

// mask shows only both ends of a token.
func mask(token string) string {
	if len(token) <= 10 {
		return "*****"
	}
	return token[:5] + "..." + token[len(token)-5:]
}
