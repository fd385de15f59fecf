package alerts_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entalpic/siesta/pkg/alerts"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "error", alerts.LevelError.String())
	assert.Equal(t, "warning", alerts.LevelWarning.String())
	assert.Equal(t, "progress", alerts.LevelProgress.String())
	assert.Equal(t, "unknown(42)", alerts.Level(42).String())
}

func TestAlertString(t *testing.T) {
	a := alerts.New(alerts.LevelSuccess, "Static files updated.")
	assert.Equal(t, "✓ Static files updated.", a.String())
	assert.False(t, a.Timestamp.IsZero())
}

func TestRecorder(t *testing.T) {
	r := alerts.NewRecorder()
	r.Info("fetching")
	r.Warn("Backing up a to a.bak")
	r.Progress("Downloading contents of 'x'")
	r.Success("done")

	assert.Len(t, r.Alerts(), 4)
	assert.Equal(t, []string{"Backing up a to a.bak"}, r.Messages(alerts.LevelWarning))
	assert.True(t, r.Contains(alerts.LevelProgress, "Downloading"))
	assert.False(t, r.Contains(alerts.LevelError, "anything"))

	assert.True(t, r.Confirm("Continue?"))
	r.ConfirmFunc = func(q string) bool { return strings.Contains(q, "conf.py") }
	assert.True(t, r.Confirm("Update conf.py?"))
	assert.False(t, r.Confirm("Update hooks?"))
	assert.Equal(t, []string{"Continue?", "Update conf.py?", "Update hooks?"}, r.Questions)
}

func TestConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	c := alerts.NewConsole(buf, alerts.WithNoColor(true), alerts.WithInteractive(false))

	c.Progress("Downloading contents of 'a'")
	c.Warn("Backing up docs/x to docs/x.bak")
	c.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "Downloading contents of 'a'")
	assert.Contains(t, out, "Backing up docs/x to docs/x.bak")
	assert.Contains(t, out, "hello")
	assert.False(t, c.Confirm("Continue?"), "non-interactive console uses the default answer")

	c.ConfirmDefault = true
	assert.True(t, c.Confirm("Continue?"))
}

func TestConsoleQuietAndAssumeYes(t *testing.T) {
	buf := &bytes.Buffer{}
	c := alerts.NewConsole(buf, alerts.WithQuiet(true), alerts.WithAssumeYes(true), alerts.WithInteractive(false))

	c.Info("hidden")
	c.Progress("hidden too")
	assert.Empty(t, buf.String())
	assert.True(t, c.Confirm("Overwrite?"))
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, alerts.Discard, alerts.OrDiscard(nil))
	r := alerts.NewRecorder()
	assert.Equal(t, alerts.Messenger(r), alerts.OrDiscard(r))
	assert.True(t, alerts.Discard.Confirm("x"))
}
