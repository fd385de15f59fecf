// Package application provides a mock of the command-facing application.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/entalpic/siesta"
	app "github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/pkg/alerts"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
//	rec := alerts.NewRecorder()
//	mock := &application.Mock{
//	    SiestaFunc: func(opts ...siesta.Option) (siesta.Siesta, error) {
//	        return siesta.New(append(opts, siesta.WithFS(afero.NewMemMapFs()))...)
//	    },
//	    MessengerFunc: func() alerts.Messenger { return rec },
//	}
//	cmd := docs.NewCommand(mock)
type Mock struct {
	SiestaFunc        func(opts ...siesta.Option) (siesta.Siesta, error)
	MessengerFunc     func() alerts.Messenger
	LoggerFunc        func() *zerolog.Logger
	TokensFunc        func() app.TokenStore
	ReadSecretFunc    func(prompt string) (string, error)
	LatestReleaseFunc func(ctx context.Context) (*github.Release, error)
	VersionFunc       func() string
	CommitFunc        func() string
	DateFunc          func() string
	BuiltByFunc       func() string
}

var _ app.Application = (*Mock)(nil)

// Siesta returns a client using the mock function or a default client.
func (m *Mock) Siesta(opts ...siesta.Option) (siesta.Siesta, error) {
	if m.SiestaFunc != nil {
		return m.SiestaFunc(opts...)
	}
	return siesta.New(opts...)
}

// Messenger returns a messenger using the mock function or one that drops everything.
func (m *Mock) Messenger() alerts.Messenger {
	if m.MessengerFunc != nil {
		return m.MessengerFunc()
	}
	return alerts.Discard
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// Tokens returns a store using the mock function or nil.
func (m *Mock) Tokens() app.TokenStore {
	if m.TokensFunc != nil {
		return m.TokensFunc()
	}
	return nil
}

// ReadSecret returns a value using the mock function or an empty string.
func (m *Mock) ReadSecret(prompt string) (string, error) {
	if m.ReadSecretFunc != nil {
		return m.ReadSecretFunc(prompt)
	}
	return "", nil
}

// LatestRelease returns a release using the mock function or nil.
func (m *Mock) LatestRelease(ctx context.Context) (*github.Release, error) {
	if m.LatestReleaseFunc != nil {
		return m.LatestReleaseFunc(ctx)
	}
	return nil, nil
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// TokenRecorder is a TokenStore that keeps the last stored token.
type TokenRecorder struct {
	Token string
	Err   error
}

// Store records token, or returns Err when set.
func (r *TokenRecorder) Store(token string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Token = token
	return nil
}
