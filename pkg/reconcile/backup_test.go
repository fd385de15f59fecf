package reconcile_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/pkg/reconcile"
)

func TestBackupName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/docs/file": "v0"})

	name, err := reconcile.BackupName(fs, "/docs/file")
	require.NoError(t, err)
	assert.Equal(t, "/docs/file.bak", name)

	writeFiles(t, fs, map[string]string{"/docs/file.bak": "old"})
	name, err = reconcile.BackupName(fs, "/docs/file")
	require.NoError(t, err)
	assert.Equal(t, "/docs/file.bak.1", name)
}

func TestBackupNeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/docs/file":     "v2",
		"/docs/file.bak": "v0",
	})

	first, err := reconcile.Backup(fs, "/docs/file")
	require.NoError(t, err)
	assert.Equal(t, "/docs/file.bak.1", first)

	writeFiles(t, fs, map[string]string{"/docs/file": "v3"})
	second, err := reconcile.Backup(fs, "/docs/file")
	require.NoError(t, err)
	assert.Equal(t, "/docs/file.bak.2", second)

	assert.Equal(t, "v0", read(t, fs, "/docs/file.bak"))
	assert.Equal(t, "v2", read(t, fs, "/docs/file.bak.1"))
	assert.Equal(t, "v3", read(t, fs, "/docs/file.bak.2"))
}

func TestBackupNameFillsFirstGap(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/f.bak":   "",
		"/f.bak.2": "",
	})

	name, err := reconcile.BackupName(fs, "/f")
	require.NoError(t, err)
	assert.Equal(t, "/f.bak.1", name)
}

func TestParsePolicy(t *testing.T) {
	p, err := reconcile.ParsePolicy("Force")
	require.NoError(t, err)
	assert.Equal(t, reconcile.Force, p)

	p, err = reconcile.ParsePolicy("preserve")
	require.NoError(t, err)
	assert.Equal(t, reconcile.Preserve, p)
	assert.Equal(t, "preserve", p.String())

	_, err = reconcile.ParsePolicy("merge")
	assert.Error(t, err)
}
