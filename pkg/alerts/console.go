package alerts

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Console writes alerts to a terminal using pterm prefix printers.
type Console struct {
	out io.Writer

	// AssumeYes answers every question with yes without prompting.
	AssumeYes bool
	// Quiet suppresses info and progress lines.
	Quiet bool
	// ConfirmDefault is the answer used when no prompt can be shown.
	ConfirmDefault bool

	interactive bool

	mu         sync.Mutex
	onProgress bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithAssumeYes makes Confirm always return true.
func WithAssumeYes(yes bool) ConsoleOption {
	return func(c *Console) { c.AssumeYes = yes }
}

// WithQuiet hides info and progress lines.
func WithQuiet(quiet bool) ConsoleOption {
	return func(c *Console) { c.Quiet = quiet }
}

// WithNoColor disables pterm styling.
func WithNoColor(noColor bool) ConsoleOption {
	return func(*Console) {
		if noColor {
			pterm.DisableStyling()
		}
	}
}

// WithInteractive overrides terminal detection for prompts.
func WithInteractive(interactive bool) ConsoleOption {
	return func(c *Console) { c.interactive = interactive }
}

// NewConsole creates a Console writing to out (stderr when nil).
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	if out == nil {
		out = os.Stderr
	}
	c := &Console{
		out:         out,
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Info prints an informational line.
func (c *Console) Info(msg string) {
	if c.Quiet {
		return
	}
	c.println(pterm.Info, msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	c.println(pterm.Warning, msg)
}

// Error prints an error line.
func (c *Console) Error(msg string) {
	c.println(pterm.Error, msg)
}

// Success prints a success line.
func (c *Console) Success(msg string) {
	c.println(pterm.Success, msg)
}

// Progress replaces the current transient line with msg.
func (c *Console) Progress(msg string) {
	if c.Quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// errors writing progress are not worth surfacing
	_, _ = fmt.Fprintf(c.out, "\r\033[K%s", msg)
	c.onProgress = true
}

// Confirm asks question and returns the answer.
func (c *Console) Confirm(question string) bool {
	if c.AssumeYes {
		return true
	}
	if !c.interactive {
		return c.ConfirmDefault
	}
	c.clearProgress()
	answer, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(c.ConfirmDefault).
		Show(question)
	if err != nil {
		return c.ConfirmDefault
	}
	return answer
}

func (c *Console) println(printer pterm.PrefixPrinter, msg string) {
	c.clearProgress()
	c.mu.Lock()
	defer c.mu.Unlock()
	printer.WithWriter(c.out).Println(msg)
}

func (c *Console) clearProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onProgress {
		_, _ = fmt.Fprint(c.out, "\r\033[K")
		c.onProgress = false
	}
}
