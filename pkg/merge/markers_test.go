package merge_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/merge"
)

var m = merge.Markers{Start: "START", End: "END"}

func TestExtract(t *testing.T) {
	interior, ok := m.Extract("head\nSTART\nnew\nEND\ntail\n")
	require.True(t, ok)
	assert.Equal(t, "\nnew\n", interior)

	_, ok = m.Extract("no markers here\n")
	assert.False(t, ok)

	_, ok = m.Extract("END before START\n")
	assert.False(t, ok)

	_, ok = m.Extract("STARTEND\n")
	assert.False(t, ok, "an empty block carries nothing")
}

func TestExtractSpansToLastEnd(t *testing.T) {
	interior, ok := m.Extract("START\na\nEND\nmid\nSTART\nb\nEND\n")
	require.True(t, ok)
	assert.Equal(t, "\na\nEND\nmid\nSTART\nb\n", interior)
}

func TestReplaceBlockExistingSpan(t *testing.T) {
	got := m.ReplaceBlock("START\nold\nEND", "\nnew\n")
	assert.Equal(t, "START\nnew\nEND\n", got)

	got = m.ReplaceBlock("a = 1\nSTART\nold\nEND\nb = 2\n", "\nnew\n")
	assert.Equal(t, "a = 1\nSTART\nnew\nEND\nb = 2\n", got)
}

func TestReplaceBlockNoSpan(t *testing.T) {
	got := m.ReplaceBlock("a = 1\n", "\nnew\n")
	assert.Equal(t, "a = 1\n\nSTART\nnew\nEND\n", got)

	got = m.ReplaceBlock("a = 1", "\nnew\n")
	assert.Equal(t, "a = 1\nSTART\nnew\nEND\n", got)
}

func TestReplaceBlockEverySpan(t *testing.T) {
	got := m.ReplaceBlock("START\nx\nEND\nkeep\nSTART\ny\nEND\n", "\nnew\n")
	assert.Equal(t, "START\nnew\nEND\nkeep\nSTART\nnew\nEND\n", got)
}

func TestReplaceBlockSingleTrailingNewline(t *testing.T) {
	got := m.ReplaceBlock("START\nold\nEND\n\n\n", "\nnew\n")
	assert.Equal(t, "START\nnew\nEND\n", got)
}

func TestReplaceBlockIsIdempotent(t *testing.T) {
	once := m.ReplaceBlock("a\n", "\nnew\n")
	assert.Equal(t, once, m.ReplaceBlock(once, "\nnew\n"))
}

func TestUpdateFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/source/conf.py", []byte("project = 'x'\nSTART\nold\nEND\n"), 0o644))

	changed, err := m.UpdateFile(fs, "START\nnew\nEND\n", "/docs/source/conf.py")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := afero.ReadFile(fs, "/docs/source/conf.py")
	require.NoError(t, err)
	assert.Equal(t, "project = 'x'\nSTART\nnew\nEND\n", string(data))

	changed, err = m.UpdateFile(fs, "START\nnew\nEND\n", "/docs/source/conf.py")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdateFileSourceWithoutBlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	changed, err := m.UpdateFile(fs, "nothing to propagate\n", "/missing/conf.py")
	require.NoError(t, err, "a source without a block is a no-op, even before checking the destination")
	assert.False(t, changed)
}

func TestUpdateFileMissingDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := m.UpdateFile(fs, "START\nnew\nEND\n", "/docs/source/conf.py")
	require.Error(t, err)
	assert.True(t, errors.IsDestinationMissing(err))
	assert.Contains(t, err.Error(), "destination file not found")
}
