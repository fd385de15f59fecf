package project

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/errors"
)

// ignoredDirs never count as project sources.
var ignoredDirs = map[string]bool{
	".venv": true, "venv": true, ".tox": true, ".eggs": true,
	"build": true, "dist": true, ".git": true, "node_modules": true,
}

var errFound = errors.New("found")

// HasPythonFiles reports whether dir holds a .py file outside virtual
// environments and build output.
func HasPythonFiles(afs afero.Fs, dir string) (bool, error) {
	err := afero.Walk(afs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && ignoredDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".py" {
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, errors.WrapIO("walk", dir, err)
	}
	return false, nil
}
