// Package embedded carries the boilerplate bundle compiled into the binary:
// the documentation skeleton, the reference pre-commit configuration and the
// dependency manifest.
package embedded

import (
	"embed"
	"io/fs"
)

//go:embed all:bundle
var raw embed.FS

// FS is the bundle rooted where the repository's src/siesta/ directory is.
var FS fs.FS = mustSub(raw, "bundle")

// File names at the bundle root.
const (
	Boilerplate  = "boilerplate"
	PreCommits   = "precommits.yaml"
	Dependencies = "dependencies.json"
)

// ReadFile reads a file from the bundle.
func ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(FS, name)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
