package project

import (
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// RTDConfig is a ReadTheDocs configuration file.
type RTDConfig struct {
	Version int      `yaml:"version"`
	Build   RTDBuild `yaml:"build"`
}

// RTDBuild is the build section of RTDConfig.
type RTDBuild struct {
	OS       string            `yaml:"os"`
	Tools    map[string]string `yaml:"tools"`
	Commands []string          `yaml:"commands"`
}

// NewRTDConfig returns the uv-based build siesta projects use.
func NewRTDConfig(pythonVersion string) RTDConfig {
	return RTDConfig{
		Version: 2,
		Build: RTDBuild{
			OS:    "ubuntu-22.04",
			Tools: map[string]string{"python": pythonVersion},
			Commands: []string{
				"asdf plugin add uv",
				"asdf install uv latest",
				"asdf global uv latest",
				"uv sync",
				"uv run sphinx-build -M html docs/source $READTHEDOCS_OUTPUT",
			},
		},
	}
}

// WriteRTDConfig writes dir/.readthedocs.yaml unless it exists. It reports
// whether the file was written.
func WriteRTDConfig(fs afero.Fs, dir string) (bool, error) {
	path := filepath.Join(dir, constants.ReadTheDocsConfig)
	if ok, err := afero.Exists(fs, path); err != nil {
		return false, errors.WrapIO("stat", path, err)
	} else if ok {
		return false, nil
	}

	data, err := yaml.MarshalWithOptions(NewRTDConfig(PythonVersion(fs, dir)),
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return false, errors.WrapParse("yaml", constants.ReadTheDocsConfig, err)
	}
	if err := afero.WriteFile(fs, path, data, constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return true, nil
}
