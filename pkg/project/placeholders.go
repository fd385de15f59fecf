package project

import (
	"encoding/json"
	"strings"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/errors"
)

// Placeholder tokens found in the boilerplate.
const (
	NamePlaceholder        = "$PROJECT_NAME"
	URLPlaceholder         = "$PROJECT_URL"
	AutoAPIDirsPlaceholder = "autoapi_dirs = []"

	// MissingURL stands in for an unknown repository URL.
	MissingURL = " URL TO BE SET "
)

// Placeholders are the values substituted into a fresh boilerplate.
type Placeholders struct {
	Name string
	URL  string
	// PackageDirs are relative to the docs source directory.
	PackageDirs []string
}

// Apply substitutes every placeholder in text.
func (p Placeholders) Apply(text string) string {
	url := p.URL
	if url == "" {
		url = MissingURL
	}
	dirs := p.PackageDirs
	if dirs == nil {
		dirs = []string{}
	}
	// a []string always marshals
	encoded, _ := json.Marshal(dirs)
	return strings.NewReplacer(
		NamePlaceholder, p.Name,
		URLPlaceholder, url,
		AutoAPIDirsPlaceholder, "autoapi_dirs = "+strings.ReplaceAll(string(encoded), ",", ", "),
	).Replace(text)
}

// ApplyFile substitutes placeholders in the file at path. The file must exist.
func (p Placeholders) ApplyFile(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return errors.NewDestinationError("file", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(p.Apply(string(data))), info.Mode().Perm()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
