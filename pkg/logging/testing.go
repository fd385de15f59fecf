package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// Capture is a trace-level logger writing JSON lines to memory.
type Capture struct {
	Logger *zerolog.Logger
	buf    bytes.Buffer
}

// NewCapture returns a Capture. The global level is lowered to trace for
// the duration of the test.
func NewCapture(t testing.TB) *Capture {
	t.Helper()
	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

	c := &Capture{}
	logger := zerolog.New(&c.buf).Level(zerolog.TraceLevel)
	c.Logger = &logger
	return c
}

// String returns everything logged so far.
func (c *Capture) String() string {
	return c.buf.String()
}

// Contains reports whether the captured output contains substr.
func (c *Capture) Contains(substr string) bool {
	return strings.Contains(c.buf.String(), substr)
}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
