// Package project discovers facts about the Python project being documented
// (its name, Python version, packages and repository URL) and writes the
// project-level files siesta scaffolds next to the docs.
package project

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

type pyproject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Name returns the project name from dir/pyproject.toml, or the name of dir.
func Name(fs afero.Fs, dir string) (string, error) {
	path := filepath.Join(dir, "pyproject.toml")
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		var p pyproject
		if err := toml.Unmarshal(data, &p); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("unreadable pyproject.toml, using directory name")
			break
		}
		if p.Project.Name != "" {
			return p.Project.Name, nil
		}
		if p.Tool.Poetry.Name != "" {
			return p.Tool.Poetry.Name, nil
		}
	case !os.IsNotExist(err):
		return "", errors.WrapIO("read", path, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapIO("resolve", dir, err)
	}
	return filepath.Base(abs), nil
}

// SnakeCase lowercases name and turns spaces and dashes into underscores.
func SnakeCase(name string) string {
	name = cases.Lower(language.Und).String(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// PythonVersion returns the content of dir/.python-version, or the default
// version.
func PythonVersion(fs afero.Fs, dir string) string {
	data, err := afero.ReadFile(fs, filepath.Join(dir, ".python-version"))
	if err != nil {
		return constants.DefaultPythonVersion
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return constants.DefaultPythonVersion
}

// Packages returns the importable packages of the project in dir: the
// directories holding an __init__.py, under src/ when it exists. Without
// any, the project directory itself is returned.
func Packages(fs afero.Fs, dir string) ([]string, error) {
	root := dir
	if ok, _ := afero.DirExists(fs, filepath.Join(dir, "src")); ok {
		root = filepath.Join(dir, "src")
	}
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, errors.WrapIO("read", root, err)
	}

	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(root, e.Name())
		if ok, _ := afero.Exists(fs, filepath.Join(p, "__init__.py")); ok {
			pkgs = append(pkgs, p)
		}
	}
	if len(pkgs) == 0 {
		pkgs = []string{dir}
	}
	return pkgs, nil
}

// RelativeTo rewrites paths relative to base, slash-separated.
func RelativeTo(base string, paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return nil, errors.WrapIO("resolve", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out, nil
}
