package docs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/cmd/paths"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/deps"
)

type initFlags struct {
	sourceFlags
	path          string
	projectDir    string
	projectName   string
	repositoryURL string
	overwrite     bool
}

// NewInitCommand creates the docs init command.
func NewInitCommand(app application.Application) *cobra.Command {
	flags := &initFlags{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a Sphinx documentation folder",
		Long: `Initialize a Sphinx documentation project with the standard configuration.

The boilerplate (conf.py, index.rst, Makefile, static files and templates) is
copied into --path using the split source/build layout. The project name, the
repository URL and the package folders are filled in from pyproject.toml and
the git origin. A .readthedocs.yaml is written unless one exists.`,
		Example: `  siesta docs init
  siesta docs init --path ./documentation --overwrite
  siesta docs init --local --project-name "My Project"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.path, "path", constants.DefaultDocsPath, "where to create the docs")
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", ".", "root of the Python project")
	cmd.Flags().StringVar(&flags.projectName, "project-name", "", "project name (default from pyproject.toml)")
	cmd.Flags().StringVar(&flags.repositoryURL, "repository-url", "", "repository URL (default from the git origin)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "remove an existing docs folder first")
	flags.register(cmd)
	return cmd
}

func runInit(cmd *cobra.Command, app application.Application, flags *initFlags) error {
	s, err := app.Siesta(flags.options(cmd)...)
	if err != nil {
		return err
	}

	res, err := s.InitDocs(cmd.Context(), siesta.InitOptions{
		Path:          paths.Expand(flags.path),
		ProjectDir:    paths.Expand(flags.projectDir),
		Overwrite:     flags.overwrite,
		ProjectName:   flags.projectName,
		RepositoryURL: flags.repositoryURL,
	})
	if err != nil {
		return err
	}
	app.Logger().Debug().
		Str("path", res.Path).
		Str("project", res.ProjectName).
		Int("files", len(res.Report.Written)).
		Msg("docs initialized")

	m := app.Messenger()
	m.Info("Now go to your newly created docs folder and check the values in conf.py.")
	manifest, err := deps.Load()
	if err != nil {
		return err
	}
	m.Info(fmt.Sprintf("Install the documentation dependencies with: %s", manifest.PipCommand()))
	return nil
}
