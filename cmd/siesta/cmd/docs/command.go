// Package docs provides the docs command and its init and update subcommands.
package docs

import (
	"github.com/spf13/cobra"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/pkg/constants"
)

// NewCommand creates the docs command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "docs",
		Short:   "Set up and update a project's documentation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewInitCommand(app))
	cmd.AddCommand(NewUpdateCommand(app))
	return cmd
}

// sourceFlags are the flags choosing where boilerplate comes from.
type sourceFlags struct {
	branch   string
	contents string
	local    bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.branch, "branch", "", "branch to fetch the boilerplate from (default \""+constants.DefaultBranch+"\")")
	cmd.Flags().StringVar(&f.contents, "contents", "", "boilerplate path in the repository (default \""+constants.DefaultContentPath+"\")")
	cmd.Flags().BoolVar(&f.local, "local", false, "use the boilerplate bundled in siesta instead of fetching it")
}

// options turns the flags that were set into client options.
func (f *sourceFlags) options(cmd *cobra.Command) []siesta.Option {
	var opts []siesta.Option
	if cmd.Flags().Changed("local") {
		opts = append(opts, siesta.WithLocal(f.local))
	}
	if f.branch != "" {
		opts = append(opts, siesta.WithBranch(f.branch))
	}
	if f.contents != "" {
		opts = append(opts, siesta.WithContentPath(f.contents))
	}
	return opts
}
