// Package application defines what siesta commands need from the running
// application. Commands accept this interface rather than the concrete
// app.App so they can be tested against internal/cmd/application.Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            s, err := app.Siesta(siesta.WithLocal(true))
//	            if err != nil {
//	                return err
//	            }
//	            _, err = s.UpdateConfPy(cmd.Context(), "./docs")
//	            return err
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/entalpic/siesta"
	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/pkg/alerts"
)

// TokenStore persists the GitHub PAT.
type TokenStore interface {
	Store(token string) error
}

// Application provides the dependencies commands share.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Siesta returns a client configured from the application config.
	// opts are applied last and override it.
	Siesta(opts ...siesta.Option) (siesta.Siesta, error)

	// Messenger returns where user-facing messages go.
	Messenger() alerts.Messenger

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// Tokens returns where set-github-pat stores the PAT.
	Tokens() TokenStore

	// ReadSecret asks for a value without echoing it.
	ReadSecret(prompt string) (string, error)

	// LatestRelease returns the latest published siesta release.
	LatestRelease(ctx context.Context) (*github.Release, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
