package github_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/internal/github/githubtest"
	"github.com/entalpic/siesta/pkg/errors"
)

func token(tok string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return tok, nil }
}

func newClient(t *testing.T, repo githubtest.Repo) (*github.Client, *githubtest.Server) {
	t.Helper()
	srv := githubtest.NewServer("entalpic", "siesta", repo)
	t.Cleanup(srv.Close)
	c, err := github.NewClient("entalpic/siesta", token("pat"), github.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c, srv
}

var files = map[string]string{
	"src/siesta/boilerplate/Makefile":               "html:\n",
	"src/siesta/boilerplate/source/conf.py":         "project = 'x'\n",
	"src/siesta/boilerplate/source/_static/a.css":   "body {}\n",
	"src/siesta/boilerplate/source/_static/js/b.js": "1;\n",
}

func TestNewClientRejectsBadRepository(t *testing.T) {
	for _, repo := range []string{"", "siesta", "/x", "a/b/c"} {
		_, err := github.NewClient(repo, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidInput, repo)
	}
}

func TestListContentsDirectory(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files})

	items, err := c.ListContents(context.Background(), "src/siesta/boilerplate/source", "main")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "src/siesta/boilerplate/source/_static", items[0].Path)
	assert.True(t, items[0].IsDir())
	assert.Equal(t, "src/siesta/boilerplate/source/conf.py", items[1].Path)
	assert.Equal(t, github.TypeFile, items[1].Type)
}

func TestListContentsFile(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files})

	items, err := c.ListContents(context.Background(), "src/siesta/boilerplate/Makefile", "main")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Makefile", items[0].Name)
}

func TestDownload(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files})

	data, err := c.Download(context.Background(), "src/siesta/boilerplate/source/conf.py", "main")
	require.NoError(t, err)
	assert.Equal(t, "project = 'x'\n", string(data))

	_, err = c.Download(context.Background(), "src/siesta/boilerplate/source", "main")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestNotFoundDistinguishesBranchAndPath(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files, Branches: []string{"main", "dev"}})

	_, err := c.ListContents(context.Background(), "src/siesta/boilerplate", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.KindBranch, errors.NotFoundKindOf(err))
	assert.Contains(t, err.Error(), "branch not found: nope")

	_, err = c.ListContents(context.Background(), "src/siesta/missing", "dev")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.KindPath, errors.NotFoundKindOf(err))
	assert.Contains(t, err.Error(), "src/siesta/missing")
}

func TestListBranches(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files, Branches: []string{"main", "dev"}})

	branches, err := c.ListBranches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "dev"}, branches)
}

func TestLatestRelease(t *testing.T) {
	c, _ := newClient(t, githubtest.Repo{Files: files, Release: "v1.4.0"})

	rel, err := c.LatestRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", rel.TagName)
	assert.False(t, rel.PublishedAt.IsZero())

	c, _ = newClient(t, githubtest.Repo{Files: files})
	_, err = c.LatestRelease(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestBadCredentials(t *testing.T) {
	srv := githubtest.NewServer("entalpic", "siesta", githubtest.Repo{Files: files, Token: "right"})
	defer srv.Close()

	c, err := github.NewClient("entalpic/siesta", token("wrong"), github.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.ListContents(context.Background(), "src", "main")
	assert.ErrorIs(t, err, errors.ErrAPIKeyInvalid)
}
