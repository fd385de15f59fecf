package pat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/entalpic/siesta/cmd/application"
	"github.com/entalpic/siesta/internal/cmd/application"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/errors"
)

func newMock(store *application.TokenRecorder, rec *alerts.Recorder, secret string) *application.Mock {
	return &application.Mock{
		MessengerFunc:  func() alerts.Messenger { return rec },
		TokensFunc:     func() app.TokenStore { return store },
		ReadSecretFunc: func(string) (string, error) { return secret, nil },
	}
}

func TestSetPATFromFlag(t *testing.T) {
	store := &application.TokenRecorder{}
	rec := alerts.NewRecorder()
	cmd := NewCommand(newMock(store, rec, ""))
	cmd.SetArgs([]string{"--pat", "github_pat_0123456789"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "github_pat_0123456789", store.Token)
	require.Len(t, rec.Questions, 1)
	assert.Contains(t, rec.Questions[0], "githu...56789")
	assert.NotContains(t, rec.Questions[0], "github_pat_0123456789")
}

func TestSetPATPrompted(t *testing.T) {
	store := &application.TokenRecorder{}
	cmd := NewCommand(newMock(store, alerts.NewRecorder(), "from-prompt-token"))
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "from-prompt-token", store.Token)
}

func TestSetPATEmpty(t *testing.T) {
	cmd := NewCommand(newMock(&application.TokenRecorder{}, alerts.NewRecorder(), ""))
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestSetPATDeclined(t *testing.T) {
	store := &application.TokenRecorder{}
	rec := alerts.NewRecorder()
	rec.Answer = false
	cmd := NewCommand(newMock(store, rec, ""))
	cmd.SetArgs([]string{"--pat", "github_pat_0123456789"})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, store.Token)
}

func TestSetPATStoreError(t *testing.T) {
	store := &application.TokenRecorder{Err: fmt.Errorf("keyring locked")}
	cmd := NewCommand(newMock(store, alerts.NewRecorder(), ""))
	cmd.SetArgs([]string{"--pat", "github_pat_0123456789"})
	assert.ErrorContains(t, cmd.Execute(), "keyring locked")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "*****", mask("short"))
	assert.Equal(t, "abcde...vwxyz", mask("abcdefghijklmnopqrstuvwxyz"))
}
