package siesta

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/internal/transport"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/project"
)

// TestsOptions configure SetupTests.
type TestsOptions struct {
	// ProjectDir is the root of the Python project. Default ".".
	ProjectDir string
	// ProjectName overrides the name read from pyproject.toml.
	ProjectName string
	// Actions also writes .github/workflows/test.yml.
	Actions bool
	// Debugger makes ipdb the breakpoint() debugger.
	Debugger bool
}

// TestsResult tells what SetupTests did. Paths are empty for skipped steps.
type TestsResult struct {
	ProjectName string
	TestsPath   string
	Workflow    string
	Debugger    string
}

// SetupTests writes tests/test_import.py and, when asked, the test
// workflow and the ipdb hook. Steps whose target already exists are
// skipped with a warning.
func (s *siesta) SetupTests(ctx context.Context, opts TestsOptions) (*TestsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}
	afs := s.config.fs
	m := s.config.messenger
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}
	if ok, _ := afero.DirExists(afs, opts.ProjectDir); !ok {
		return nil, errors.NewDestinationError("folder", opts.ProjectDir)
	}

	name := opts.ProjectName
	if name == "" {
		var err error
		if name, err = project.Name(afs, opts.ProjectDir); err != nil {
			return nil, err
		}
	}
	res := &TestsResult{ProjectName: name}

	written, err := project.WriteTestsInfra(afs, opts.ProjectDir, name)
	if err != nil {
		return nil, err
	}
	if written {
		res.TestsPath = filepath.Join(opts.ProjectDir, "tests", "test_import.py")
		s.hooks.fileWritten(res.TestsPath)
		m.Info("Tests infra written.")
	} else {
		m.Warn("Tests directory already exists. Skipping.")
	}

	if opts.Actions {
		written, err := project.WriteTestWorkflow(afs, opts.ProjectDir)
		if err != nil {
			return nil, err
		}
		if written {
			res.Workflow = filepath.Join(opts.ProjectDir, constants.WorkflowsDir, constants.TestWorkflow)
			s.hooks.fileWritten(res.Workflow)
			m.Info("Test actions config written.")
		} else {
			m.Warn("Workflows directory already exists. Skipping.")
		}
	}

	if opts.Debugger {
		changed, err := project.AddDebugger(afs, opts.ProjectDir)
		if err != nil {
			return nil, err
		}
		if changed != "" {
			res.Debugger = changed
			s.hooks.fileWritten(changed)
			m.Info("ipdb added as debugger.")
		} else {
			m.Warn("No package __init__.py to hook ipdb into, or it is already there. Skipping.")
		}
	}

	s.config.logger.Debug().
		Str("project", name).
		Str("tests", res.TestsPath).
		Str("workflow", res.Workflow).
		Msg("test scaffolding done")
	m.Success("Testing infrastructure set up successfully.")
	return res, nil
}

// GitignoreResult tells what WriteGitignore did.
type GitignoreResult struct {
	Path string
	// Backup is where the previous .gitignore was copied, if there was one.
	Backup string
}

// WriteGitignore downloads GitHub's Python gitignore template and writes
// it to projectDir/.gitignore after siesta's own entries. A previous file
// is backed up.
func (s *siesta) WriteGitignore(ctx context.Context, projectDir string) (*GitignoreResult, error) {
	if projectDir == "" {
		projectDir = "."
	}
	if ok, _ := afero.DirExists(s.config.fs, projectDir); !ok {
		return nil, errors.NewDestinationError("folder", projectDir)
	}

	client := transport.New(&transport.NoAuth{}, transport.WithAccept("text/plain"))
	template, err := project.FetchGitignoreTemplate(ctx, client, s.config.gitignore)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(projectDir, ".gitignore")
	backup, err := project.WriteGitignore(s.config.fs, projectDir, template)
	if err != nil {
		return nil, err
	}
	if backup != "" {
		s.hooks.engineHooks().OnBackedUp(path, backup)
		s.config.messenger.Warn("Existing .gitignore backed up to " + backup)
	}
	s.hooks.fileWritten(path)
	s.config.messenger.Info("Gitignore written.")
	return &GitignoreResult{Path: path, Backup: backup}, nil
}
