package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entalpic/siesta/internal/cmd/application"
	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/pkg/errors"
)

func TestVersion(t *testing.T) {
	called := false
	mock := &application.Mock{
		VersionFunc: func() string { return "1.4.0" },
		LatestReleaseFunc: func(context.Context) (*github.Release, error) {
			called = true
			return &github.Release{TagName: "v1.5.0"}, nil
		},
	}

	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "siesta version 1.4.0")
	assert.False(t, called)

	out.Reset()
	cmd.SetArgs([]string{"--latest"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "latest release: v1.5.0")
}

func TestVersionLatestError(t *testing.T) {
	mock := &application.Mock{
		LatestReleaseFunc: func(context.Context) (*github.Release, error) {
			return nil, errors.NewNotFoundError("release", "latest")
		},
	}
	cmd := NewCommand(mock)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--latest"})
	assert.True(t, errors.IsNotFound(cmd.Execute()))
}
