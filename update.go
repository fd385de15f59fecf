package siesta

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/merge"
)

// UpdateConfPy fetches the boilerplate conf.py and copies its managed block
// into docsPath/source/conf.py. It reports whether the file changed.
func (s *siesta) UpdateConfPy(ctx context.Context, docsPath string, opts ...SyncOption) (bool, error) {
	o := s.syncOptions(opts)
	dest := filepath.Join(docsPath, filepath.FromSlash(constants.ConfPyPath))
	if ok, _ := afero.Exists(s.config.fs, dest); !ok {
		return false, errors.NewDestinationError("file (conf.py)", dest)
	}

	src := confPyContentPath(o.ContentPath)
	entries, err := s.source().Fetch(ctx, src, o.Branch)
	if err != nil {
		return false, err
	}
	if len(entries) != 1 {
		return false, &errors.ResourceError{
			Operation: "fetch",
			Resource:  "conf.py",
			ID:        src,
			Message:   "expected a single file",
			Err:       errors.ErrInvalidInput,
		}
	}

	changed, err := merge.DefaultMarkers.UpdateFile(s.config.fs, string(entries[0].Content), dest)
	if err != nil {
		return false, err
	}
	s.config.logger.Debug().Str("path", dest).Bool("changed", changed).Msg("conf.py managed block")
	if changed {
		s.hooks.fileWritten(dest)
	}
	return changed, nil
}
