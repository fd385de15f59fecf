package siesta

import (
	"sync"

	"github.com/entalpic/siesta/pkg/reconcile"
)

// Hook function types for file events
type (
	// FileWrittenHook is called after a destination file is written
	FileWrittenHook func(path string)

	// FileBackedUpHook is called after an existing file is backed up
	FileBackedUpHook func(path, backup string)

	// FileSkippedHook is called when a destination file already matches
	FileSkippedHook func(path string)
)

// hooks manages event callbacks for file changes
type hooks struct {
	mu            sync.RWMutex
	onFileWritten []FileWrittenHook
	onBackedUp    []FileBackedUpHook
	onSkipped     []FileSkippedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileWritten registers a callback for every file written
func (s *siesta) OnFileWritten(fn FileWrittenHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onFileWritten = append(s.hooks.onFileWritten, fn)
}

// OnFileBackedUp registers a callback for every backup made
func (s *siesta) OnFileBackedUp(fn FileBackedUpHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onBackedUp = append(s.hooks.onBackedUp, fn)
}

// OnFileSkipped registers a callback for every identical file skipped
func (s *siesta) OnFileSkipped(fn FileSkippedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onSkipped = append(s.hooks.onSkipped, fn)
}

func (h *hooks) fileWritten(path string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFileWritten {
		fn(path)
	}
}

// engineHooks fans engine events out to every registered callback.
func (h *hooks) engineHooks() reconcile.Hooks {
	return reconcile.Hooks{
		OnWritten: h.fileWritten,
		OnSkipped: func(path string) {
			h.mu.RLock()
			defer h.mu.RUnlock()
			for _, fn := range h.onSkipped {
				fn(path)
			}
		},
		OnBackedUp: func(path, backup string) {
			h.mu.RLock()
			defer h.mu.RUnlock()
			for _, fn := range h.onBackedUp {
				fn(path, backup)
			}
		},
	}
}
