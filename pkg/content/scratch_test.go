package content_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/pkg/content"
	"github.com/entalpic/siesta/pkg/errors"
)

func TestWithScratchRemovesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	var dir string

	err := content.WithScratch(fs, "siesta-", func(d string) error {
		dir = d
		return content.Materialize(fs, d, []content.FileEntry{{Path: "a/b.txt", Content: []byte("x")}})
	})
	require.NoError(t, err)

	exists, err := afero.DirExists(fs, dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWithScratchRemovesDirectoryOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	var dir string

	err := content.WithScratch(fs, "siesta-", func(d string) error {
		dir = d
		return fmt.Errorf("fetch failed")
	})
	assert.EqualError(t, err, "fetch failed")

	exists, _ := afero.DirExists(fs, dir)
	assert.False(t, exists)
}

func TestWithScratchRemovesDirectoryOnPanic(t *testing.T) {
	fs := afero.NewMemMapFs()
	var dir string

	assert.Panics(t, func() {
		_ = content.WithScratch(fs, "siesta-", func(d string) error {
			dir = d
			panic("interrupted")
		})
	})

	exists, _ := afero.DirExists(fs, dir)
	assert.False(t, exists)
}

func TestMaterialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	entries := []content.FileEntry{
		{Path: "source/conf.py", Content: []byte("# conf\n")},
		{Path: "Makefile", Content: []byte("html:\n")},
	}
	require.NoError(t, content.Materialize(fs, "/scratch", entries))

	data, err := afero.ReadFile(fs, filepath.Join("/scratch", "source", "conf.py"))
	require.NoError(t, err)
	assert.Equal(t, "# conf\n", string(data))

	err = content.Materialize(fs, "/scratch", []content.FileEntry{{Path: "../escape", Content: nil}})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
