package project

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/internal/cmd/application"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/logging"
)

func newMock(fs afero.Fs, rec *alerts.Recorder, opts ...siesta.Option) *application.Mock {
	return &application.Mock{
		SiestaFunc: func(extra ...siesta.Option) (siesta.Siesta, error) {
			base := []siesta.Option{
				siesta.WithFS(fs),
				siesta.WithMessenger(rec),
				siesta.WithLogger(logging.NewNopLogger()),
			}
			return siesta.New(append(append(base, opts...), extra...)...)
		},
		MessengerFunc: func() alerts.Messenger { return rec },
	}
}

func run(t *testing.T, app *application.Mock, args ...string) error {
	t.Helper()
	cmd := NewCommand(app)
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(context.Background())
}

func newProject(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/pyproject.toml", []byte("[project]\nname = \"existing-project\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/src/existing_project/__init__.py", nil, 0o644))
	return fs
}

func TestSetupTestsAsksForActions(t *testing.T) {
	fs := newProject(t)
	rec := alerts.NewRecorder()

	require.NoError(t, run(t, newMock(fs, rec), "setup-tests", "--project-dir", "/p"))

	assert.Equal(t, []string{"Would you like to initialize GitHub Actions?"}, rec.Questions)
	data, err := afero.ReadFile(fs, "/p/tests/test_import.py")
	require.NoError(t, err)
	assert.Contains(t, string(data), "import existing_project")
	exists, _ := afero.Exists(fs, "/p/.github/workflows/test.yml")
	assert.True(t, exists)
}

func TestSetupTestsNoActions(t *testing.T) {
	fs := newProject(t)
	rec := alerts.NewRecorder()

	require.NoError(t, run(t, newMock(fs, rec), "setup-tests", "--project-dir", "/p", "--no-actions"))

	assert.Empty(t, rec.Questions, "an explicit flag is not asked again")
	assert.True(t, rec.Contains(alerts.LevelInfo, "Tests infra written."))
	exists, _ := afero.Exists(fs, "/p/.github")
	assert.False(t, exists)
}

func TestSetupTestsActionsFlagsExclusive(t *testing.T) {
	err := run(t, newMock(newProject(t), alerts.NewRecorder()), "setup-tests", "--actions", "--no-actions")
	assert.Error(t, err)
}

func TestSetupTestsIPDB(t *testing.T) {
	fs := newProject(t)
	rec := alerts.NewRecorder()

	require.NoError(t, run(t, newMock(fs, rec), "setup-tests", "--project-dir", "/p", "--actions=false", "--ipdb"))

	data, err := afero.ReadFile(fs, "/p/src/existing_project/__init__.py")
	require.NoError(t, err)
	assert.Contains(t, string(data), "ipdb.set_trace")
}

func TestGitignore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("*.egg-info/\n"))
	}))
	t.Cleanup(srv.Close)
	fs := newProject(t)
	rec := alerts.NewRecorder()

	require.NoError(t, run(t, newMock(fs, rec, siesta.WithGitignoreURL(srv.URL)), "gitignore", "--project-dir", "/p"))

	data, err := afero.ReadFile(fs, "/p/.gitignore")
	require.NoError(t, err)
	assert.Contains(t, string(data), "*.egg-info/")

	rec.Answer = false
	require.NoError(t, afero.WriteFile(fs, "/p/.gitignore", []byte("kept\n"), 0o644))
	require.NoError(t, run(t, newMock(fs, rec, siesta.WithGitignoreURL(srv.URL)), "gitignore", "--project-dir", "/p"))
	data, err = afero.ReadFile(fs, "/p/.gitignore")
	require.NoError(t, err)
	assert.Equal(t, "kept\n", string(data), "declining leaves the file alone")
}
