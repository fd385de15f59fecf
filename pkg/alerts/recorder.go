package alerts

import (
	"strings"
	"sync"
)

// Recorder is a Messenger that keeps every alert in memory.
type Recorder struct {
	mu     sync.Mutex
	alerts []*Alert

	// Answer is returned by Confirm unless ConfirmFunc is set.
	Answer bool
	// ConfirmFunc decides the answer per question.
	ConfirmFunc func(question string) bool
	// Questions lists every question asked, in order.
	Questions []string
}

// NewRecorder returns a Recorder that answers yes.
func NewRecorder() *Recorder {
	return &Recorder{Answer: true}
}

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, New(level, msg))
}

// Info records an info alert.
func (r *Recorder) Info(msg string) { r.add(LevelInfo, msg) }

// Warn records a warning alert.
func (r *Recorder) Warn(msg string) { r.add(LevelWarning, msg) }

// Error records an error alert.
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

// Success records a success alert.
func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

// Progress records a progress alert.
func (r *Recorder) Progress(msg string) { r.add(LevelProgress, msg) }

// Confirm records the question and returns the configured answer.
func (r *Recorder) Confirm(question string) bool {
	r.mu.Lock()
	r.Questions = append(r.Questions, question)
	fn, answer := r.ConfirmFunc, r.Answer
	r.mu.Unlock()
	if fn != nil {
		return fn(question)
	}
	return answer
}

// Alerts returns a copy of the recorded alerts.
func (r *Recorder) Alerts() []*Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Messages returns the messages recorded at level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, a := range r.Alerts() {
		if a.Level == level {
			out = append(out, a.Message)
		}
	}
	return out
}

// Contains reports whether any alert at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, msg := range r.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
