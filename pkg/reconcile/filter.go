package reconcile

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/errors"
)

// DefaultExcludes are build droppings that never belong in a project.
var DefaultExcludes = []string{
	"**/__pycache__/**",
	"**/*.pyc",
	"**/.DS_Store",
}

// Prune deletes every file under root whose slash-separated relative path
// matches an exclude glob, or does not contain a match for include. A nil
// include keeps everything the excludes leave. Directories are left in
// place. It returns the relative paths removed.
func Prune(fs afero.Fs, root string, include *regexp.Regexp, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.NewConfigError("filter", "invalid exclude pattern "+pattern, errors.ErrInvalidInput)
		}
	}

	var doomed []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !keep(filepath.ToSlash(rel), include, exclude) {
			doomed = append(doomed, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}

	removed := make([]string, 0, len(doomed))
	for _, rel := range doomed {
		if err := fs.Remove(filepath.Join(root, rel)); err != nil {
			return removed, errors.WrapIO("delete", rel, err)
		}
		removed = append(removed, filepath.ToSlash(rel))
	}
	return removed, nil
}

func keep(rel string, include *regexp.Regexp, exclude []string) bool {
	for _, pattern := range exclude {
		// patterns were validated up front
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return include == nil || include.MatchString(rel)
}
