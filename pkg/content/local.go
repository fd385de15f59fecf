package content

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// Local serves content from a bundled file system.
type Local struct {
	fsys fs.FS
	// prefix is the repository path the bundle root corresponds to.
	prefix string
}

// NewLocal serves fsys as if it were mounted at the repository's src/siesta/.
func NewLocal(fsys fs.FS) *Local {
	return &Local{fsys: fsys, prefix: constants.BundlePrefix}
}

// Fetch implements Source. ref is ignored: the bundle has a single version.
func (l *Local) Fetch(ctx context.Context, contentPath, _ string) ([]FileEntry, error) {
	p := l.bundlePath(contentPath)

	info, err := fs.Stat(l.fsys, p)
	if err != nil {
		return nil, &errors.NotFoundError{Resource: "bundled", ID: contentPath, Kind: errors.KindPath, Ref: "bundle"}
	}
	extra := extraPath(p, !info.IsDir())
	if p == "." {
		extra = ""
	}

	var entries []FileEntry
	err = fs.WalkDir(l.fsys, p, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return errors.Join(errors.ErrCanceled, ctx.Err())
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return errors.WrapIO("read", name, err)
		}
		entries = append(entries, FileEntry{Path: Relative(extra, name), Content: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// bundlePath strips the bundle prefix as a whole path component, so
// src/siesta/x maps to x and src/siestafoo/x is left alone.
func (l *Local) bundlePath(contentPath string) string {
	p := strings.Trim(contentPath, "/")
	prefix := strings.Trim(l.prefix, "/")
	switch {
	case p == prefix:
		p = ""
	case strings.HasPrefix(p, prefix+"/"):
		p = p[len(prefix)+1:]
	}
	return path.Clean(p)
}
