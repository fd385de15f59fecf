// Package project provides the project command: scaffolding that lives
// next to the docs (tests, CI workflow, .gitignore).
package project

import (
	"github.com/spf13/cobra"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/cmd/paths"
)

// NewCommand creates the project command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		GroupID: "setup",
		Short:   "Scaffold project files around the docs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewSetupTestsCommand(app))
	cmd.AddCommand(NewGitignoreCommand(app))
	return cmd
}

type setupTestsFlags struct {
	projectDir  string
	projectName string
	actions     bool
	ipdb        bool
}

// NewSetupTestsCommand creates the project setup-tests command.
func NewSetupTestsCommand(app application.Application) *cobra.Command {
	flags := &setupTestsFlags{}
	cmd := &cobra.Command{
		Use:   "setup-tests",
		Short: "Write a starter pytest suite and its GitHub Actions workflow",
		Long: `Write tests/test_import.py, a pytest module checking the project imports
and every source file carries a copyright line.

Unless --actions or --no-actions is given you are asked whether to write
.github/workflows/test.yml as well. It runs the tests with uv on the Python
version from .python-version. Existing tests/ and .github/workflows/ folders
are never touched.`,
		Example: `  siesta project setup-tests --yes
  siesta project setup-tests --no-actions --project-name my-lib
  siesta project setup-tests --ipdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetupTests(cmd, app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", ".", "root of the Python project")
	cmd.Flags().StringVar(&flags.projectName, "project-name", "", "project name (default from pyproject.toml)")
	cmd.Flags().BoolVar(&flags.actions, "actions", true, "write the GitHub Actions test workflow")
	cmd.Flags().Bool("no-actions", false, "do not write the GitHub Actions test workflow")
	cmd.Flags().BoolVar(&flags.ipdb, "ipdb", false, "make ipdb the breakpoint() debugger")
	cmd.MarkFlagsMutuallyExclusive("actions", "no-actions")
	return cmd
}

func runSetupTests(cmd *cobra.Command, app application.Application, flags *setupTestsFlags) error {
	m := app.Messenger()
	actions := flags.actions
	switch {
	case cmd.Flags().Changed("no-actions"):
		actions = false
	case !cmd.Flags().Changed("actions"):
		actions = m.Confirm("Would you like to initialize GitHub Actions?")
	}

	s, err := app.Siesta()
	if err != nil {
		return err
	}
	res, err := s.SetupTests(cmd.Context(), siesta.TestsOptions{
		ProjectDir:  paths.Expand(flags.projectDir),
		ProjectName: flags.projectName,
		Actions:     actions,
		Debugger:    flags.ipdb,
	})
	if err != nil {
		return err
	}
	app.Logger().Debug().
		Str("project", res.ProjectName).
		Bool("tests", res.TestsPath != "").
		Bool("workflow", res.Workflow != "").
		Msg("tests set up")
	return nil
}

// NewGitignoreCommand creates the project gitignore command.
func NewGitignoreCommand(app application.Application) *cobra.Command {
	var projectDir string
	cmd := &cobra.Command{
		Use:   "gitignore",
		Short: "Write .gitignore from GitHub's Python template",
		Long: `Download GitHub's Python .gitignore template and write it to the project,
after a few editor and OS entries. An existing .gitignore is backed up to
.gitignore.bak (or .gitignore.bak.N) first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := paths.Expand(projectDir)
			if !app.Messenger().Confirm("Write " + dir + "/.gitignore from the Python template?") {
				return nil
			}
			s, err := app.Siesta()
			if err != nil {
				return err
			}
			_, err = s.WriteGitignore(cmd.Context(), dir)
			return err
		},
	}
	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "root of the Python project")
	return cmd
}
