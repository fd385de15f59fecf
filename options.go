package siesta

import (
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/content"
	"github.com/entalpic/siesta/pkg/errors"
)

// Option is a function that configures a Siesta instance
type Option func(*config) error

// WithFS sets the file system every operation works on.
func WithFS(afs afero.Fs) Option {
	return func(c *config) error {
		if afs == nil {
			return errors.NewConfigError("siesta", "file system is nil", errors.ErrInvalidInput)
		}
		c.fs = afs
		return nil
	}
}

// WithMessenger sets where user-facing messages go.
func WithMessenger(m alerts.Messenger) Option {
	return func(c *config) error {
		c.messenger = alerts.OrDiscard(m)
		return nil
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithCredentials sets the provider of the GitHub token.
func WithCredentials(p credentials.Provider) Option {
	return func(c *config) error {
		c.creds = p
		return nil
	}
}

// WithLocal uses the bundled boilerplate instead of the remote repository.
func WithLocal(local bool) Option {
	return func(c *config) error {
		c.local = local
		return nil
	}
}

// WithBranch sets the default branch to fetch from.
func WithBranch(branch string) Option {
	return func(c *config) error {
		if branch != "" {
			c.branch = branch
		}
		return nil
	}
}

// WithContentPath sets the default repository path of the boilerplate.
func WithContentPath(path string) Option {
	return func(c *config) error {
		if path != "" {
			c.contentPath = path
		}
		return nil
	}
}

// WithRepository fetches from another owner/name repository.
func WithRepository(repo string) Option {
	return func(c *config) error {
		if repo != "" {
			c.repository = repo
		}
		return nil
	}
}

// WithAPIURL points the GitHub client at another API root.
func WithAPIURL(u string) Option {
	return func(c *config) error {
		c.apiURL = u
		return nil
	}
}

// WithConcurrency bounds parallel downloads.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewConfigError("siesta", "concurrency must be at least 1", errors.ErrInvalidInput)
		}
		c.concurrency = n
		return nil
	}
}

// WithBundle replaces the bundled boilerplate.
func WithBundle(bundle fs.FS) Option {
	return func(c *config) error {
		c.bundle = bundle
		return nil
	}
}

// WithSource bypasses the local/remote choice with src.
func WithSource(src content.Source) Option {
	return func(c *config) error {
		c.source = src
		return nil
	}
}

// WithGitignoreURL sets where the .gitignore template is downloaded from.
func WithGitignoreURL(u string) Option {
	return func(c *config) error {
		if u != "" {
			c.gitignore = u
		}
		return nil
	}
}
