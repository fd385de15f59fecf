package content

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// WithScratch runs fn with a fresh temporary directory on fsys and removes
// it afterwards, whether fn returns an error or panics.
func WithScratch(fsys afero.Fs, prefix string, fn func(dir string) error) (err error) {
	dir, err := afero.TempDir(fsys, "", prefix)
	if err != nil {
		return errors.WrapIO("create", "scratch directory", err)
	}
	defer func() {
		if rerr := fsys.RemoveAll(dir); rerr != nil && err == nil {
			err = errors.WrapIO("delete", dir, rerr)
		}
	}()
	return fn(dir)
}

// Materialize writes entries under dir, creating directories as needed.
func Materialize(fsys afero.Fs, dir string, entries []FileEntry) error {
	for _, e := range entries {
		rel := filepath.FromSlash(e.Path)
		if !filepath.IsLocal(rel) {
			return &errors.ResourceError{
				Operation: "materialize",
				Resource:  "file",
				ID:        e.Path,
				Message:   "path escapes the scratch directory",
				Err:       errors.ErrInvalidInput,
			}
		}
		target := filepath.Join(dir, rel)
		if err := fsys.MkdirAll(filepath.Dir(target), constants.DirPermissions); err != nil {
			return errors.WrapIO("create", filepath.Dir(target), err)
		}
		if err := afero.WriteFile(fsys, target, e.Content, constants.FilePermissions); err != nil {
			return errors.WrapIO("write", target, err)
		}
	}
	return nil
}
