// Package deps reads the manifest of Python packages a siesta documentation
// project needs, grouped by scope.
package deps

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/entalpic/siesta/internal/embedded"
	"github.com/entalpic/siesta/pkg/errors"
)

// Scope is a named group of dependencies, such as "docs" or "dev".
type Scope struct {
	Name     string
	Packages []string
}

// Manifest lists scopes in manifest order.
type Manifest struct {
	Scopes []Scope
}

// Load reads the bundled manifest.
func Load() (*Manifest, error) {
	data, err := embedded.ReadFile(embedded.Dependencies)
	if err != nil {
		return nil, errors.WrapResource("load", "dependency manifest", embedded.Dependencies, err)
	}
	return Parse(data)
}

// Parse reads a manifest: a JSON object mapping scope names to lists of
// package names. Scope order is kept.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.MapSlice
	// JSON is valid YAML; the ordered decoder keeps scope order
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, errors.WrapParse("json", embedded.Dependencies, err)
	}

	m := &Manifest{}
	for _, item := range doc {
		values, ok := item.Value.([]any)
		if !ok {
			return nil, errors.NewParseError("json", embedded.Dependencies,
				fmt.Sprintf("scope %v is not a list", item.Key), nil)
		}
		scope := Scope{Name: fmt.Sprint(item.Key)}
		for _, v := range values {
			scope.Packages = append(scope.Packages, fmt.Sprint(v))
		}
		m.Scopes = append(m.Scopes, scope)
	}
	return m, nil
}

// Scope returns the packages of the named scope.
func (m *Manifest) Scope(name string) ([]string, bool) {
	for _, s := range m.Scopes {
		if s.Name == name {
			return s.Packages, true
		}
	}
	return nil, false
}

// All returns the union of every scope, first occurrence first.
func (m *Manifest) All() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range m.Scopes {
		for _, p := range s.Packages {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// PipCommand returns a pip install line for every package.
func (m *Manifest) PipCommand() string {
	return "pip install " + strings.Join(m.All(), " ")
}
