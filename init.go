package siesta

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/project"
	"github.com/entalpic/siesta/pkg/reconcile"
)

// InitOptions configure InitDocs.
type InitOptions struct {
	// Path is the documentation folder to create.
	Path string
	// ProjectDir is the root of the Python project. Default ".".
	ProjectDir string
	// Overwrite removes an existing Path first.
	Overwrite bool
	// ProjectName overrides the name read from pyproject.toml.
	ProjectName string
	// RepositoryURL overrides the URL read from the git origin.
	RepositoryURL string
	Sync          []SyncOption
}

// InitResult tells what InitDocs did.
type InitResult struct {
	Path        string
	ProjectName string
	// RTDWritten is true when .readthedocs.yaml was created.
	RTDWritten bool
	Report     *reconcile.Report
}

// InitDocs creates a documentation folder: the boilerplate is copied with
// the Force policy, the empty build, _static and _templates folders are
// created, placeholders get the project's values and a ReadTheDocs
// configuration is written unless one exists.
func (s *siesta) InitDocs(ctx context.Context, opts InitOptions) (*InitResult, error) {
	afs := s.config.fs
	m := s.config.messenger
	if opts.Path == "" {
		opts.Path = constants.DefaultDocsPath
	}
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}

	hasPython, err := project.HasPythonFiles(afs, opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if !hasPython {
		return nil, &errors.ResourceError{
			Operation: "initialize",
			Resource:  "docs",
			ID:        opts.Path,
			Message:   "no Python files found in project, documentation requires Python files to document",
			Err:       errors.ErrInvalidInput,
		}
	}

	if !s.config.local && s.config.source == nil {
		// fail before touching the file system
		if _, err := credentials.Require(ctx, s.config.creds); err != nil {
			return nil, err
		}
	}

	m.Info("Initializing docs at path: " + opts.Path)
	exists, err := afero.Exists(afs, opts.Path)
	if err != nil {
		return nil, errors.WrapIO("stat", opts.Path, err)
	}
	if exists {
		if !opts.Overwrite {
			return nil, &errors.ResourceError{
				Operation: "initialize",
				Resource:  "docs",
				ID:        opts.Path,
				Message:   "path already exists, use --overwrite to overwrite",
				Err:       errors.ErrInvalidInput,
			}
		}
		m.Warn("Overwriting path.")
		if err := afs.RemoveAll(opts.Path); err != nil {
			return nil, errors.WrapIO("delete", opts.Path, err)
		}
	}
	if err := afs.MkdirAll(opts.Path, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", opts.Path, err)
	}
	m.Success("Docs initialized")

	syncOpts := append([]SyncOption{WithPolicy(reconcile.Force)}, opts.Sync...)
	report, err := s.SyncBoilerplate(ctx, opts.Path, syncOpts...)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{"build", filepath.Join("source", "_static"), filepath.Join("source", "_templates")} {
		if err := afs.MkdirAll(filepath.Join(opts.Path, dir), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}

	name, err := s.projectName(opts)
	if err != nil {
		return nil, err
	}
	if err := s.fillPlaceholders(opts, name); err != nil {
		return nil, err
	}

	written, err := project.WriteRTDConfig(afs, opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if written {
		m.Info("ReadTheDocs config written.")
	} else {
		m.Info("ReadTheDocs config already exists.")
	}

	return &InitResult{Path: opts.Path, ProjectName: name, RTDWritten: written, Report: report}, nil
}

func (s *siesta) projectName(opts InitOptions) (string, error) {
	if opts.ProjectName != "" {
		return opts.ProjectName, nil
	}
	return project.Name(s.config.fs, opts.ProjectDir)
}

func (s *siesta) fillPlaceholders(opts InitOptions, name string) error {
	afs := s.config.fs
	source := filepath.Join(opts.Path, "source")

	pkgs, err := project.Packages(afs, opts.ProjectDir)
	if err != nil {
		return err
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return errors.WrapIO("resolve", source, err)
	}
	for i, p := range pkgs {
		if pkgs[i], err = filepath.Abs(p); err != nil {
			return errors.WrapIO("resolve", p, err)
		}
	}
	dirs, err := project.RelativeTo(absSource, pkgs)
	if err != nil {
		return err
	}

	url := opts.RepositoryURL
	if url == "" {
		url = project.RepositoryURL(afs, opts.ProjectDir)
	}

	p := project.Placeholders{Name: name, URL: url, PackageDirs: dirs}
	for _, file := range []string{
		filepath.FromSlash(constants.ConfPyPath),
		filepath.Join("source", "_templates", "autoapi", "index.rst"),
	} {
		if err := p.ApplyFile(afs, filepath.Join(opts.Path, file)); err != nil {
			return err
		}
	}
	return nil
}
