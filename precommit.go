package siesta

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/entalpic/siesta/internal/embedded"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/merge"
)

// PreCommitResult tells what UpdatePreCommit did.
type PreCommitResult struct {
	Path string
	// Created is true when no configuration existed before.
	Created bool
}

// UpdatePreCommit merges the bundled reference hooks into
// projectDir/.pre-commit-config.yaml, or writes them when the file is
// missing. Hooks the project added are kept; hooks it shares with the
// reference take the reference version.
func (s *siesta) UpdatePreCommit(ctx context.Context, projectDir string) (*PreCommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}
	ref, err := fs.ReadFile(s.config.bundle, embedded.PreCommits)
	if err != nil {
		return nil, errors.WrapResource("load", "pre-commit reference", embedded.PreCommits, err)
	}

	path := filepath.Join(projectDir, constants.PreCommitConfig)
	created, err := merge.MergeKeyedFile(s.config.fs, path, ref, merge.KeyedOptions{Logger: s.config.logger})
	if err != nil {
		return nil, err
	}
	s.hooks.fileWritten(path)

	if created {
		s.config.messenger.Info("Pre-commit file written.")
	} else {
		s.config.messenger.Info("Pre-commit file updated.")
	}
	return &PreCommitResult{Path: path, Created: created}, nil
}
