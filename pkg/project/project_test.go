package project_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/project"
)

func write(t *testing.T, fs afero.Fs, path, body string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
}

func TestName(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/work/app/pyproject.toml", "[project]\nname = \"my-lib\"\nversion = \"0.1.0\"\n")

	name, err := project.Name(fs, "/work/app")
	require.NoError(t, err)
	assert.Equal(t, "my-lib", name)

	write(t, fs, "/work/poetry/pyproject.toml", "[tool.poetry]\nname = \"legacy\"\n")
	name, err = project.Name(fs, "/work/poetry")
	require.NoError(t, err)
	assert.Equal(t, "legacy", name)
}

func TestNameFallsBackToDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/plain", 0o755))
	name, err := project.Name(fs, "/work/plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", name)

	write(t, fs, "/work/broken/pyproject.toml", "[project\nname=")
	name, err = project.Name(fs, "/work/broken")
	require.NoError(t, err)
	assert.Equal(t, "broken", name)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "my_cool_lib", project.SnakeCase(" My Cool-Lib "))
}

func TestPythonVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.Equal(t, "3.12", project.PythonVersion(fs, "/p"))

	write(t, fs, "/p/.python-version", "3.11\n")
	assert.Equal(t, "3.11", project.PythonVersion(fs, "/p"))
}

func TestPackages(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/p/src/alpha/__init__.py", "")
	write(t, fs, "/p/src/beta/__init__.py", "")
	write(t, fs, "/p/src/notes/readme.md", "")

	pkgs, err := project.Packages(fs, "/p")
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/src/alpha", "/p/src/beta"}, pkgs)

	rel, err := project.RelativeTo("/p/docs/source", pkgs)
	require.NoError(t, err)
	assert.Equal(t, []string{"../../src/alpha", "../../src/beta"}, rel)

	require.NoError(t, fs.MkdirAll("/flat", 0o755))
	pkgs, err = project.Packages(fs, "/flat")
	require.NoError(t, err)
	assert.Equal(t, []string{"/flat"}, pkgs)
}

func TestRepositoryURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.Empty(t, project.RepositoryURL(fs, "/p"))

	write(t, fs, "/p/.git/config", `[core]
	bare = false
[remote "upstream"]
	url = https://github.com/other/fork.git
[remote "origin"]
	url = git@github.com:entalpic/siesta.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
	assert.Equal(t, "https://github.com/entalpic/siesta", project.RepositoryURL(fs, "/p"))
}

func TestHTTPSURL(t *testing.T) {
	assert.Equal(t, "https://github.com/a/b", project.HTTPSURL("https://github.com/a/b.git"))
	assert.Equal(t, "https://github.com/a/b", project.HTTPSURL("git@github.com:a/b.git"))
	assert.Equal(t, "https://github.com/a/b", project.HTTPSURL("https://github.com/a/b"))
}

func TestPlaceholders(t *testing.T) {
	text := "project = \"$PROJECT_NAME\"\nurl = \"$PROJECT_URL\"\nautoapi_dirs = []\n"

	got := project.Placeholders{Name: "lib", URL: "https://github.com/a/lib", PackageDirs: []string{"../../src/a", "../../src/b"}}.Apply(text)
	assert.Equal(t, "project = \"lib\"\nurl = \"https://github.com/a/lib\"\nautoapi_dirs = [\"../../src/a\", \"../../src/b\"]\n", got)

	got = project.Placeholders{Name: "lib"}.Apply(text)
	assert.Contains(t, got, `url = " URL TO BE SET "`)
	assert.Contains(t, got, "autoapi_dirs = []")
}

func TestPlaceholdersApplyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/d/conf.py", "project = \"$PROJECT_NAME\"\n")

	require.NoError(t, project.Placeholders{Name: "lib"}.ApplyFile(fs, "/d/conf.py"))
	data, err := afero.ReadFile(fs, "/d/conf.py")
	require.NoError(t, err)
	assert.Equal(t, "project = \"lib\"\n", string(data))

	err = project.Placeholders{}.ApplyFile(fs, "/d/missing.rst")
	assert.True(t, errors.IsDestinationMissing(err))
}

func TestWriteRTDConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/p/.python-version", "3.11\n")

	written, err := project.WriteRTDConfig(fs, "/p")
	require.NoError(t, err)
	assert.True(t, written)

	data, err := afero.ReadFile(fs, "/p/.readthedocs.yaml")
	require.NoError(t, err)
	var cfg project.RTDConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, "3.11", cfg.Build.Tools["python"])
	assert.Contains(t, cfg.Build.Commands, "uv sync")

	write(t, fs, "/p/.readthedocs.yaml", "custom: true\n")
	written, err = project.WriteRTDConfig(fs, "/p")
	require.NoError(t, err)
	assert.False(t, written)
}

func TestHTTPSURLOtherHosts(t *testing.T) {
	assert.Equal(t, "https://gitlab.com/g/p", project.HTTPSURL("ssh://git@gitlab.com:22/g/p.git"))
	assert.Equal(t, "https://gitlab.com/g/p", project.HTTPSURL("git@gitlab.com:g/p.git"))
}

func TestHasPythonFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/p/.venv/lib/site.py", "")
	write(t, fs, "/p/build/lib/gen.py", "")
	write(t, fs, "/p/README.md", "")

	ok, err := project.HasPythonFiles(fs, "/p")
	require.NoError(t, err)
	assert.False(t, ok)

	write(t, fs, "/p/src/pkg/__init__.py", "")
	ok, err = project.HasPythonFiles(fs, "/p")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = project.HasPythonFiles(fs, "/nowhere")
	require.NoError(t, err)
	assert.False(t, ok)
}
