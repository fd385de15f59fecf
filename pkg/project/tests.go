package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// ModulePlaceholder is replaced by the importable module name in the test template.
const ModulePlaceholder = "$PROJECT_MODULE"

// debuggerMarker is how an __init__.py that already sets ipdb is recognized.
const debuggerMarker = "PYTHONBREAKPOINT"

var (
	//go:embed templates/test_import.py
	testImportTemplate string

	//go:embed templates/ipdb.py
	ipdbSnippet string
)

// TestImportSource returns the starter test module for the project called name.
func TestImportSource(name string) string {
	return strings.ReplaceAll(testImportTemplate, ModulePlaceholder, strings.ReplaceAll(name, "-", "_"))
}

// WriteTestsInfra writes dir/tests/test_import.py for the project called
// name. A dir/tests that already exists is left alone and false is returned.
func WriteTestsInfra(fs afero.Fs, dir, name string) (bool, error) {
	testsDir := filepath.Join(dir, "tests")
	if ok, err := afero.Exists(fs, testsDir); err != nil {
		return false, errors.WrapIO("stat", testsDir, err)
	} else if ok {
		return false, nil
	}
	if err := fs.MkdirAll(testsDir, constants.DirPermissions); err != nil {
		return false, errors.WrapIO("create", testsDir, err)
	}
	path := filepath.Join(testsDir, "test_import.py")
	if err := afero.WriteFile(fs, path, []byte(TestImportSource(name)), constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return true, nil
}

// AddDebugger makes ipdb the breakpoint() debugger by appending a snippet
// to the shallowest __init__.py under dir/src. It returns the file changed,
// or "" when there is no package or the snippet is already there.
func AddDebugger(fs afero.Fs, dir string) (string, error) {
	src := filepath.Join(dir, "src")
	if ok, _ := afero.DirExists(fs, src); !ok {
		return "", nil
	}

	var shallowest string
	depth := -1
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := doublestar.Match("**/__init__.py", rel); !ok {
			return nil
		}
		if d := strings.Count(rel, "/"); depth < 0 || d < depth {
			shallowest, depth = path, d
		}
		return nil
	})
	if err != nil {
		return "", errors.WrapIO("walk", src, err)
	}
	if shallowest == "" {
		return "", nil
	}

	info, err := fs.Stat(shallowest)
	if err != nil {
		return "", errors.WrapIO("stat", shallowest, err)
	}
	data, err := afero.ReadFile(fs, shallowest)
	if err != nil {
		return "", errors.WrapIO("read", shallowest, err)
	}
	if strings.Contains(string(data), debuggerMarker) {
		return "", nil
	}
	if err := afero.WriteFile(fs, shallowest, append(data, ipdbSnippet...), info.Mode().Perm()); err != nil {
		return "", errors.WrapIO("write", shallowest, err)
	}
	return shallowest, nil
}
