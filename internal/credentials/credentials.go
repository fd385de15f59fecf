// Package credentials looks up the GitHub personal access token used for
// remote content fetches.
package credentials

import (
	"context"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

// Provider returns a credential. A missing credential is ("", nil).
type Provider interface {
	Credential(ctx context.Context) (string, error)
}

// ConfigKey is the configuration key holding the token.
const ConfigKey = "github_pat"

// Env reads the token from configuration: the github_pat key of a config
// file, SIESTA_GITHUB_PAT or GITHUB_TOKEN.
type Env struct {
	v *viper.Viper
}

// NewEnv binds the token key on v. A nil v gets a fresh instance.
func NewEnv(v *viper.Viper) *Env {
	if v == nil {
		v = viper.New()
	}
	// BindEnv only fails without a key
	_ = v.BindEnv(ConfigKey, constants.PATEnvVar, "GITHUB_TOKEN")
	return &Env{v: v}
}

// Credential implements Provider.
func (e *Env) Credential(context.Context) (string, error) {
	return strings.TrimSpace(e.v.GetString(ConfigKey)), nil
}

// Keyring stores the token in the operating system keyring.
type Keyring struct {
	Service string
	User    string
}

// NewKeyring returns the keyring entry siesta uses.
func NewKeyring() *Keyring {
	return &Keyring{Service: constants.KeyringService, User: constants.KeyringUser}
}

// Credential implements Provider.
func (k *Keyring) Credential(context.Context) (string, error) {
	secret, err := keyring.Get(k.Service, k.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", errors.NewAuthenticationError(k.Service, "keyring", "failed to read token", err)
	}
	return strings.TrimSpace(secret), nil
}

// Store saves token in the keyring, replacing any previous value.
func (k *Keyring) Store(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.NewConfigError("keyring", "token is empty", errors.ErrInvalidInput)
	}
	if err := keyring.Set(k.Service, k.User, token); err != nil {
		return errors.NewAuthenticationError(k.Service, "keyring", "failed to store token", err)
	}
	return nil
}

// Chain asks each provider in order and returns the first token found.
// A failing provider, such as a keyring without a backend, is skipped. When
// no provider has a token and some failed, the result is a CredentialError
// wrapping those failures.
type Chain []Provider

// Credential implements Provider.
func (c Chain) Credential(ctx context.Context) (string, error) {
	var failures []error
	for _, p := range c {
		tok, err := p.Credential(ctx)
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("credential provider failed, trying next")
			failures = append(failures, err)
			continue
		}
		if tok != "" {
			return tok, nil
		}
	}
	if len(failures) > 0 {
		return "", missing(errors.Join(failures...))
	}
	return "", nil
}

// Default is the production lookup order: configuration, then keyring.
func Default(v *viper.Viper) Chain {
	return Chain{NewEnv(v), NewKeyring()}
}

// Static always returns the same token.
type Static string

// Credential implements Provider.
func (s Static) Credential(context.Context) (string, error) {
	return string(s), nil
}

// Require returns the token from p, or an error matching
// errors.ErrCredentialMissing that tells the user how to set one.
func Require(ctx context.Context, p Provider) (string, error) {
	if p == nil {
		return "", missing(nil)
	}
	tok, err := p.Credential(ctx)
	if err != nil {
		if errors.IsCredentialMissing(err) {
			return "", err
		}
		return "", missing(err)
	}
	if tok == "" {
		return "", missing(nil)
	}
	return tok, nil
}

// Optional returns the token from p, or "" when none is configured.
func Optional(ctx context.Context, p Provider) (string, error) {
	tok, err := Require(ctx, p)
	if errors.IsCredentialMissing(err) {
		return "", nil
	}
	return tok, err
}

func missing(cause error) error {
	return errors.NewCredentialError("GitHub PAT",
		"Run `siesta set-github-pat` to set it, or export "+constants.PATEnvVar+".", cause)
}
