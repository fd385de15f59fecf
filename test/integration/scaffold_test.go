// Package integration exercises siesta end to end on the real file system.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/logging"
	"github.com/entalpic/siesta/pkg/reconcile"
)

func newClient(t *testing.T) (siesta.Siesta, *alerts.Recorder) {
	t.Helper()
	rec := alerts.NewRecorder()
	s, err := siesta.New(
		siesta.WithLocal(true),
		siesta.WithMessenger(rec),
		siesta.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return s, rec
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "demo", "__init__.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\nname = \"demo\"\n"), 0o644))
	return dir
}

func TestInitThenUpdate(t *testing.T) {
	dir := project(t)
	docs := filepath.Join(dir, "docs")
	s, _ := newClient(t)
	ctx := context.Background()

	res, err := s.InitDocs(ctx, siesta.InitOptions{Path: docs, ProjectDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "demo", res.ProjectName)

	conf, err := os.ReadFile(filepath.Join(docs, "source", "conf.py"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), `autoapi_dirs = ["../../src/demo"]`)

	css := filepath.Join(docs, "source", "_static", "css", "custom.css")
	require.NoError(t, os.WriteFile(css, []byte("/* edited */\n"), 0o644))

	report, err := s.UpdateStatic(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, css+".bak", report.BackedUp[css])

	backup, err := os.ReadFile(css + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "/* edited */\n", string(backup))

	_, err = s.UpdateConfPy(ctx, docs)
	require.NoError(t, err)
	after, err := os.ReadFile(filepath.Join(docs, "source", "conf.py"))
	require.NoError(t, err)
	assert.Contains(t, string(after), `project = "demo"`, "text outside the block is kept")

	res2, err := s.UpdatePreCommit(ctx, dir)
	require.NoError(t, err)
	assert.True(t, res2.Created)
}

func TestPreserveIsIdempotentOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, _ := newClient(t)
	ctx := context.Background()

	_, err := s.SyncBoilerplate(ctx, dir, siesta.WithPolicy(reconcile.Preserve))
	require.NoError(t, err)
	report, err := s.SyncBoilerplate(ctx, dir, siesta.WithPolicy(reconcile.Preserve))
	require.NoError(t, err)

	assert.Empty(t, report.Written)
	assert.Empty(t, report.BackedUp)
	assert.NotEmpty(t, report.Skipped)

	entries, err := filepath.Glob(filepath.Join(dir, "*.bak*"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
