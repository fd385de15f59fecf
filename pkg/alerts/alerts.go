// Package alerts carries user-facing messages: the info, warning, error and
// success lines a command prints, transient progress, and yes/no questions.
// Components receive a Messenger instead of printing, so tests can record
// exactly what a user would have seen.
package alerts

import (
	"fmt"
	"time"
)

// Alert represents a single user-facing message.
type Alert struct {
	Level     Level
	Message   string
	Timestamp time.Time
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	return fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
}

// Messenger is the capability components use to talk to the user.
type Messenger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
	// Progress shows a transient status line. It is best-effort.
	Progress(msg string)
	// Confirm asks a yes/no question.
	Confirm(question string) bool
}

// Discard is a Messenger that drops everything and answers yes.
var Discard Messenger = discard{}

type discard struct{}

func (discard) Info(string) {}
func (discard) Warn(string) {}
func (discard) Error(string) {}
func (discard) Success(string) {}
func (discard) Progress(string) {}
func (discard) Confirm(string) bool { return true }

// OrDiscard returns m, or Discard when m is nil.
func OrDiscard(m Messenger) Messenger {
	if m == nil {
		return Discard
	}
	return m
}
