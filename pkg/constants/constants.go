// Package constants provides shared constants used throughout the siesta codebase.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the repository API
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Remote repository defaults
const (
	// GitHubAPIURL is the base URL of the GitHub REST API
	GitHubAPIURL = "https://api.github.com"

	// Repository is the owner/name of the repository boilerplate is fetched from
	Repository = "entalpic/siesta"

	// DefaultBranch is the branch boilerplate is fetched from
	DefaultBranch = "main"

	// DefaultContentPath is the boilerplate directory inside the repository
	DefaultContentPath = "src/siesta/boilerplate"

	// BundlePrefix is stripped from content paths when reading the local bundle
	BundlePrefix = "src/siesta/"

	// MaxConcurrentDownloads caps parallel file downloads from the repository
	MaxConcurrentDownloads = 8
)

// Credential lookup
const (
	// KeyringService is the keyring service name the PAT is stored under
	KeyringService = "siesta"

	// KeyringUser is the keyring user name the PAT is stored under
	KeyringUser = "github_pat"

	// PATEnvVar is the environment variable checked for a PAT before the keyring
	PATEnvVar = "SIESTA_GITHUB_PAT"
)

// Docs layout
const (
	// DefaultDocsPath is where documentation lives in a project
	DefaultDocsPath = "./docs"

	// StaticIncludePattern selects the static assets of the boilerplate
	StaticIncludePattern = `(^|/)_static/`

	// ConfPyPath is the conf.py location relative to the docs folder
	ConfPyPath = "source/conf.py"

	// UpdateStartMarker opens the block of conf.py that siesta keeps up to date
	UpdateStartMarker = "# :siesta: <update>"

	// UpdateEndMarker closes the block of conf.py that siesta keeps up to date
	UpdateEndMarker = "# :siesta: </update>"

	// PreCommitConfig is the pre-commit configuration file name
	PreCommitConfig = ".pre-commit-config.yaml"

	// ReadTheDocsConfig is the ReadTheDocs configuration file name
	ReadTheDocsConfig = ".readthedocs.yaml"

	// WorkflowsDir holds the project's GitHub Actions workflows
	WorkflowsDir = ".github/workflows"

	// TestWorkflow is the workflow file running the project's tests
	TestWorkflow = "test.yml"

	// PythonGitignoreURL is GitHub's gitignore template for Python projects
	PythonGitignoreURL = "https://raw.githubusercontent.com/github/gitignore/main/Python.gitignore"

	// DefaultPythonVersion is used when a project does not pin one
	DefaultPythonVersion = "3.12"
)
