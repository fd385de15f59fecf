package project

import (
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// Workflow is a GitHub Actions workflow file.
type Workflow struct {
	Name string                 `yaml:"name"`
	On   WorkflowTriggers       `yaml:"on"`
	Jobs map[string]WorkflowJob `yaml:"jobs"`
}

// WorkflowTriggers run the workflow on every pull request and on pushes
// to the listed branches.
type WorkflowTriggers struct {
	// PullRequest is always null: any pull request triggers.
	PullRequest *struct{} `yaml:"pull_request"`
	Push        struct {
		Branches []string `yaml:"branches"`
	} `yaml:"push"`
}

// WorkflowJob is one job of a Workflow.
type WorkflowJob struct {
	RunsOn   string `yaml:"runs-on"`
	Strategy struct {
		Matrix map[string][]string `yaml:"matrix"`
	} `yaml:"strategy"`
	Steps []WorkflowStep `yaml:"steps"`
}

// WorkflowStep is one step of a WorkflowJob.
type WorkflowStep struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

// NewTestWorkflow returns the uv-based test workflow for pythonVersion: one
// job checks the project installs, the other runs pytest.
func NewTestWorkflow(pythonVersion string) Workflow {
	setup := []WorkflowStep{
		{Uses: "actions/checkout@v4"},
		{
			Name: "Set up Python ${{ matrix.python-version }}",
			Uses: "actions/setup-python@v5",
			With: map[string]string{"python-version": "${{ matrix.python-version }}"},
		},
		{Name: "Install uv", Run: "curl -LsSf https://astral.sh/uv/install.sh | sh"},
		{Name: "Install dependencies", Run: "uv sync"},
	}
	job := func(steps ...WorkflowStep) WorkflowJob {
		j := WorkflowJob{RunsOn: "ubuntu-latest", Steps: append(append([]WorkflowStep{}, setup...), steps...)}
		j.Strategy.Matrix = map[string][]string{"python-version": {pythonVersion}}
		return j
	}

	w := Workflow{
		Name: "Tests",
		Jobs: map[string]WorkflowJob{
			"test-install": job(),
			"test-pytest":  job(WorkflowStep{Name: "Run tests", Run: "uv run pytest"}),
		},
	}
	w.On.Push.Branches = []string{"main"}
	return w
}

// WriteTestWorkflow writes dir/.github/workflows/test.yml using the
// project's Python version. An existing workflows folder is left alone and
// false is returned.
func WriteTestWorkflow(fs afero.Fs, dir string) (bool, error) {
	workflows := filepath.Join(dir, constants.WorkflowsDir)
	if ok, err := afero.Exists(fs, workflows); err != nil {
		return false, errors.WrapIO("stat", workflows, err)
	} else if ok {
		return false, nil
	}

	data, err := yaml.MarshalWithOptions(NewTestWorkflow(PythonVersion(fs, dir)),
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return false, errors.WrapParse("yaml", constants.TestWorkflow, err)
	}
	if err := fs.MkdirAll(workflows, constants.DirPermissions); err != nil {
		return false, errors.WrapIO("create", workflows, err)
	}
	path := filepath.Join(workflows, constants.TestWorkflow)
	if err := afero.WriteFile(fs, path, data, constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return true, nil
}
