package docs

import (
	"github.com/spf13/cobra"

	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/cmd/paths"
	"github.com/entalpic/siesta/pkg/constants"
)

type updateFlags struct {
	sourceFlags
	path       string
	projectDir string
}

// NewUpdateCommand creates the docs update command.
func NewUpdateCommand(app application.Application) *cobra.Command {
	flags := &updateFlags{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update static files, conf.py and pre-commit hooks",
		Long: `Update an existing documentation folder from the boilerplate.

Each step asks for confirmation (use --yes to accept all):

  1. Static files in source/_static are refreshed. Files you changed are
     backed up to <name>.bak (or <name>.bak.N) before being replaced.
  2. The block of source/conf.py between "# :siesta: <update>" and
     "# :siesta: </update>" is replaced. The rest of the file is kept.
  3. The reference hooks are merged into .pre-commit-config.yaml. Hooks
     you added are kept.`,
		Example: `  siesta docs update --yes
  siesta docs update --branch dev`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.path, "path", constants.DefaultDocsPath, "the documentation folder")
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", ".", "where .pre-commit-config.yaml lives")
	flags.register(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, app application.Application, flags *updateFlags) error {
	ctx := cmd.Context()
	path := paths.Expand(flags.path)

	s, err := app.Siesta(flags.options(cmd)...)
	if err != nil {
		return err
	}
	m := app.Messenger()

	if m.Confirm("Overwrite the documentation's HTML static files. Continue?") {
		report, err := s.UpdateStatic(ctx, path)
		if err != nil {
			return err
		}
		app.Logger().Debug().
			Int("written", len(report.Written)).
			Int("backed_up", len(report.BackedUp)).
			Msg("static files")
		m.Success("Static files updated.")
	}

	if m.Confirm("Would you like to update the conf.py file?") {
		changed, err := s.UpdateConfPy(ctx, path)
		if err != nil {
			return err
		}
		if changed {
			m.Success("conf.py updated.")
		} else {
			m.Info("conf.py already up to date.")
		}
	}

	if m.Confirm("Would you like to update the pre-commit hooks?") {
		if _, err := s.UpdatePreCommit(ctx, paths.Expand(flags.projectDir)); err != nil {
			return err
		}
		m.Success("Pre-commit hooks updated.")
		m.Info("Run `pre-commit install` to activate them.")
	}

	m.Success("Done.")
	return nil
}
