package credentials_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/pkg/errors"
)

type failing struct{}

func (failing) Credential(context.Context) (string, error) { return "", fmt.Errorf("boom") }

func TestEnvPrefersSiestaVariable(t *testing.T) {
	t.Setenv("SIESTA_GITHUB_PAT", " from-siesta ")
	t.Setenv("GITHUB_TOKEN", "from-github")

	tok, err := credentials.NewEnv(viper.New()).Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-siesta", tok)
}

func TestEnvFallsBackToGitHubToken(t *testing.T) {
	t.Setenv("SIESTA_GITHUB_PAT", "")
	t.Setenv("GITHUB_TOKEN", "from-github")

	tok, err := credentials.NewEnv(nil).Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-github", tok)
}

func TestEnvReadsConfigValue(t *testing.T) {
	t.Setenv("SIESTA_GITHUB_PAT", "")
	t.Setenv("GITHUB_TOKEN", "")
	v := viper.New()
	v.Set(credentials.ConfigKey, "from-config")

	tok, err := credentials.NewEnv(v).Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-config", tok)
}

func TestKeyring(t *testing.T) {
	keyring.MockInit()
	k := credentials.NewKeyring()

	tok, err := k.Credential(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok, "absence is not an error")

	require.NoError(t, k.Store("ghp_123\n"))
	tok, err = k.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ghp_123", tok)

	assert.ErrorIs(t, k.Store("  "), errors.ErrInvalidInput)
}

func TestKeyringError(t *testing.T) {
	keyring.MockInitWithError(fmt.Errorf("no dbus"))
	t.Cleanup(keyring.MockInit)

	_, err := credentials.NewKeyring().Credential(context.Background())
	var authErr *errors.AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "keyring", authErr.Method)
}

func TestChain(t *testing.T) {
	tok, err := credentials.Chain{credentials.Static(""), credentials.Static("second")}.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	tok, err = credentials.Chain{credentials.Static("")}.Credential(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)

	tok, err = credentials.Chain{failing{}, credentials.Static("x")}.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", tok)

	_, err = credentials.Chain{failing{}, credentials.Static("")}.Credential(context.Background())
	assert.True(t, errors.IsCredentialMissing(err))
	assert.ErrorContains(t, errors.Unwrap(err), "boom")
}

func TestRequireWithoutKeyringBackend(t *testing.T) {
	keyring.MockInitWithError(fmt.Errorf("no dbus"))
	t.Cleanup(keyring.MockInit)
	t.Setenv("SIESTA_GITHUB_PAT", "")
	t.Setenv("GITHUB_TOKEN", "")

	_, err := credentials.Require(context.Background(), credentials.Default(nil))
	require.Error(t, err)
	assert.True(t, errors.IsCredentialMissing(err))
	assert.Contains(t, err.Error(), "siesta set-github-pat")

	var authErr *errors.AuthenticationError
	assert.True(t, errors.As(err, &authErr), "keyring failure stays in the chain")

	t.Setenv("SIESTA_GITHUB_PAT", "from-env")
	tok, err := credentials.Require(context.Background(), credentials.Default(nil))
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)

	t.Setenv("SIESTA_GITHUB_PAT", "")
	tok, err = credentials.Optional(context.Background(), credentials.Default(nil))
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestRequire(t *testing.T) {
	_, err := credentials.Require(context.Background(), credentials.Static(""))
	require.Error(t, err)
	assert.True(t, errors.IsCredentialMissing(err))
	assert.Contains(t, err.Error(), "siesta set-github-pat")

	_, err = credentials.Require(context.Background(), nil)
	assert.True(t, errors.IsCredentialMissing(err))

	tok, err := credentials.Require(context.Background(), credentials.Static("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
