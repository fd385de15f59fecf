// Package content fetches a tree of boilerplate files, either from the
// siesta GitHub repository or from the bundle compiled into the binary,
// and hands it over as a flat list of FileEntry values.
package content

import "context"

// FileEntry is one fetched file. Path is slash-separated and relative to the
// requested content path.
type FileEntry struct {
	Path    string
	Content []byte
}

// Source yields every file under contentPath at ref.
type Source interface {
	Fetch(ctx context.Context, contentPath, ref string) ([]FileEntry, error)
}
