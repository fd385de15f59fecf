// Package siesta scaffolds and refreshes the documentation of Python
// projects. It fetches boilerplate from the siesta repository (or the copy
// bundled in the binary) and reconciles it with what a project already has:
// whole trees are copied with backups, the pre-commit configuration is
// merged record by record, and conf.py has its managed block replaced.
package siesta

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/internal/embedded"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/content"
	"github.com/entalpic/siesta/pkg/logging"
	"github.com/entalpic/siesta/pkg/reconcile"
)

// Siesta installs and updates documentation boilerplate.
type Siesta interface {
	// SyncBoilerplate fetches the boilerplate and copies it into dest.
	SyncBoilerplate(ctx context.Context, dest string, opts ...SyncOption) (*reconcile.Report, error)

	// UpdateStatic refreshes docs/source/_static, backing up edited files.
	UpdateStatic(ctx context.Context, docsPath string, opts ...SyncOption) (*reconcile.Report, error)

	// UpdateConfPy replaces the managed block of docs/source/conf.py.
	UpdateConfPy(ctx context.Context, docsPath string, opts ...SyncOption) (bool, error)

	// UpdatePreCommit merges the reference hooks into the project's
	// pre-commit configuration.
	UpdatePreCommit(ctx context.Context, projectDir string) (*PreCommitResult, error)

	// InitDocs creates a documentation folder from the boilerplate.
	InitDocs(ctx context.Context, opts InitOptions) (*InitResult, error)

	// SetupTests writes a starter pytest suite and its GitHub Actions workflow.
	SetupTests(ctx context.Context, opts TestsOptions) (*TestsResult, error)

	// WriteGitignore writes the project's .gitignore from GitHub's Python template.
	WriteGitignore(ctx context.Context, projectDir string) (*GitignoreResult, error)

	// OnFileWritten registers a callback for every file written.
	OnFileWritten(FileWrittenHook)

	// OnFileBackedUp registers a callback for every backup made.
	OnFileBackedUp(FileBackedUpHook)

	// OnFileSkipped registers a callback for every identical file skipped.
	OnFileSkipped(FileSkippedHook)
}

// siesta is the implementation of the Siesta interface
type siesta struct {
	config *config
	hooks  *hooks
}

// config holds everything an Option can set.
type config struct {
	fs          afero.Fs
	messenger   alerts.Messenger
	logger      *zerolog.Logger
	creds       credentials.Provider
	local       bool
	branch      string
	contentPath string
	repository  string
	apiURL      string
	concurrency int
	bundle      fs.FS
	source      content.Source
	gitignore   string
}

func defaultConfig() *config {
	return &config{
		fs:          afero.NewOsFs(),
		messenger:   alerts.Discard,
		branch:      constants.DefaultBranch,
		contentPath: constants.DefaultContentPath,
		repository:  constants.Repository,
		concurrency: 1,
		bundle:      embedded.FS,
		gitignore:   constants.PythonGitignoreURL,
	}
}

// New creates a Siesta with the given options.
func New(opts ...Option) (Siesta, error) {
	s := &siesta{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if s.config.logger == nil {
		l := logging.Component("siesta")
		s.config.logger = &l
	}
	if s.config.creds == nil {
		s.config.creds = credentials.Default(nil)
	}
	return s, nil
}

// source picks the content source for this run.
func (s *siesta) source() content.Source {
	c := s.config
	if c.source != nil {
		return c.source
	}
	if c.local {
		return content.NewLocal(c.bundle)
	}
	return content.NewRemote(c.creds,
		content.WithRepository(c.repository),
		content.WithBaseURL(c.apiURL),
		content.WithConcurrency(c.concurrency),
		content.WithMessenger(c.messenger),
		content.WithLogger(c.logger),
	)
}

func (s *siesta) engine() *reconcile.Engine {
	return &reconcile.Engine{
		FS:        s.config.fs,
		Messenger: s.config.messenger,
		Logger:    s.config.logger,
		Hooks:     s.hooks.engineHooks(),
	}
}
