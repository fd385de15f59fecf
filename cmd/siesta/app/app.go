// Package app wires configuration, logging, user messaging and the siesta
// client together for the siesta CLI.
package app

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/errors"
)

// App represents the siesta application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu        sync.RWMutex
	messenger alerts.Messenger
	creds     credentials.Provider
	tokens    application.TokenStore
	fs        afero.Fs
	stdin     io.Reader
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
		stdin:   os.Stdin,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		a.config = config
	}
	if a.logger == nil {
		logger := NewLogger(a.config)
		a.logger = &logger
	}
	return a, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Messenger returns the console, created on first use so flags are applied.
func (a *App) Messenger() alerts.Messenger {
	a.mu.RLock()
	if m := a.messenger; m != nil {
		a.mu.RUnlock()
		return m
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.messenger == nil {
		a.messenger = alerts.NewConsole(os.Stderr,
			alerts.WithAssumeYes(a.config.AssumeYes),
			alerts.WithQuiet(a.config.Quiet),
			alerts.WithNoColor(a.config.NoColor),
		)
	}
	return a.messenger
}

// Credentials returns the PAT lookup chain: environment and config file
// first, then the OS keyring.
func (a *App) Credentials() credentials.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.creds != nil {
		return a.creds
	}
	return credentials.Default(a.config.Viper())
}

// Tokens returns the keyring the PAT is stored in.
func (a *App) Tokens() application.TokenStore {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.tokens != nil {
		return a.tokens
	}
	return credentials.NewKeyring()
}

// Siesta returns a client configured from the application config.
func (a *App) Siesta(opts ...siesta.Option) (siesta.Siesta, error) {
	c := a.config
	base := []siesta.Option{
		siesta.WithFS(a.fs),
		siesta.WithMessenger(a.Messenger()),
		siesta.WithLogger(a.logger),
		siesta.WithCredentials(a.Credentials()),
		siesta.WithLocal(c.Local),
		siesta.WithBranch(c.Branch),
		siesta.WithContentPath(c.Contents),
		siesta.WithRepository(c.Repository),
		siesta.WithAPIURL(c.APIURL),
		siesta.WithGitignoreURL(c.GitignoreURL),
	}
	if c.Concurrency > 0 {
		base = append(base, siesta.WithConcurrency(c.Concurrency))
	}
	s, err := siesta.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "siesta", "", err)
	}
	return s, nil
}

// LatestRelease returns the latest published release of the siesta
// repository. A PAT is sent when one is configured.
func (a *App) LatestRelease(ctx context.Context) (*github.Release, error) {
	creds := a.Credentials()
	token := func(ctx context.Context) (string, error) {
		return credentials.Optional(ctx, creds)
	}
	client, err := github.NewClient(a.config.Repository, token, github.WithBaseURL(a.config.APIURL))
	if err != nil {
		return nil, err
	}
	return client.LatestRelease(ctx)
}

// ReadSecret asks for a value with masked input on a terminal, or reads
// one line from stdin otherwise.
func (a *App) ReadSecret(prompt string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		v, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(prompt)
		if err != nil {
			return "", errors.WrapIO("read", "stdin", err)
		}
		return strings.TrimSpace(v), nil
	}
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.WrapIO("read", "stdin", err)
	}
	return strings.TrimSpace(line), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithMessenger sets where user-facing messages go.
func WithMessenger(m alerts.Messenger) Option {
	return func(a *App) error {
		a.messenger = m
		return nil
	}
}

// WithCredentials replaces the PAT lookup chain.
func WithCredentials(p credentials.Provider) Option {
	return func(a *App) error {
		a.creds = p
		return nil
	}
}

// WithTokenStore replaces the keyring.
func WithTokenStore(s application.TokenStore) Option {
	return func(a *App) error {
		a.tokens = s
		return nil
	}
}

// WithFS sets the file system commands work on.
func WithFS(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

// WithStdin sets where ReadSecret reads from.
func WithStdin(r io.Reader) Option {
	return func(a *App) error {
		a.stdin = r
		return nil
	}
}
