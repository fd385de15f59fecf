package siesta

import (
	"context"
	"path"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/content"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/reconcile"
)

// SyncOptions control a single boilerplate copy.
type SyncOptions struct {
	// ContentPath is the repository path to fetch.
	ContentPath string
	// Branch is the ref to fetch from. Ignored by the bundle.
	Branch string
	Policy reconcile.Policy
	// Include keeps only files whose relative path contains a match.
	Include string
	// Exclude lists globs that are always dropped.
	Exclude []string
}

// SyncOption configures SyncOptions.
type SyncOption func(*SyncOptions)

// WithPolicy sets how existing destination files are treated.
func WithPolicy(p reconcile.Policy) SyncOption {
	return func(o *SyncOptions) { o.Policy = p }
}

// WithInclude keeps only files matching pattern.
func WithInclude(pattern string) SyncOption {
	return func(o *SyncOptions) { o.Include = pattern }
}

// WithExclude replaces the excluded globs.
func WithExclude(patterns ...string) SyncOption {
	return func(o *SyncOptions) { o.Exclude = patterns }
}

// FromContentPath fetches another repository path.
func FromContentPath(p string) SyncOption {
	return func(o *SyncOptions) {
		if p != "" {
			o.ContentPath = p
		}
	}
}

// FromBranch fetches from another ref.
func FromBranch(b string) SyncOption {
	return func(o *SyncOptions) {
		if b != "" {
			o.Branch = b
		}
	}
}

func (s *siesta) syncOptions(opts []SyncOption) *SyncOptions {
	o := &SyncOptions{
		ContentPath: s.config.contentPath,
		Branch:      s.config.branch,
		Policy:      reconcile.Preserve,
		Exclude:     reconcile.DefaultExcludes,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SyncBoilerplate fetches the boilerplate into a scratch directory, prunes
// it and copies it into dest, which must exist.
func (s *siesta) SyncBoilerplate(ctx context.Context, dest string, opts ...SyncOption) (*reconcile.Report, error) {
	o := s.syncOptions(opts)

	var include *regexp.Regexp
	if o.Include != "" {
		re, err := regexp.Compile(o.Include)
		if err != nil {
			return nil, errors.NewConfigError("sync", "invalid include pattern", err)
		}
		include = re
	}

	logger := s.config.logger.With().
		Str("content_path", o.ContentPath).
		Str("branch", o.Branch).
		Stringer("policy", o.Policy).
		Logger()

	var report *reconcile.Report
	err := content.WithScratch(s.config.fs, "siesta-", func(scratch string) error {
		entries, err := s.source().Fetch(ctx, o.ContentPath, o.Branch)
		if err != nil {
			return err
		}
		if err := content.Materialize(s.config.fs, scratch, entries); err != nil {
			return err
		}
		removed, err := reconcile.Prune(s.config.fs, scratch, include, o.Exclude)
		if err != nil {
			return err
		}
		logger.Debug().Int("fetched", len(entries)).Int("pruned", len(removed)).Msg("staged boilerplate")

		report, err = s.engine().CopyTree(ctx, scratch, dest, o.Policy)
		return err
	})
	if err != nil {
		return report, err
	}

	logger.Info().
		Int("written", len(report.Written)).
		Int("skipped", len(report.Skipped)).
		Int("backed_up", len(report.BackedUp)).
		Msg("boilerplate synced")
	return report, nil
}

// UpdateStatic copies the boilerplate's _static files into docsPath under
// the Preserve policy. docsPath/source/_static must exist.
func (s *siesta) UpdateStatic(ctx context.Context, docsPath string, opts ...SyncOption) (*reconcile.Report, error) {
	static := filepath.Join(docsPath, "source", "_static")
	if ok, _ := afero.DirExists(s.config.fs, static); !ok {
		return nil, errors.NewDestinationError("folder", static)
	}
	opts = append([]SyncOption{
		WithPolicy(reconcile.Preserve),
		WithInclude(constants.StaticIncludePattern),
	}, opts...)
	return s.SyncBoilerplate(ctx, docsPath, opts...)
}

// confPyContentPath is the repository path of conf.py under contentPath.
func confPyContentPath(contentPath string) string {
	return path.Join(contentPath, constants.ConfPyPath)
}
