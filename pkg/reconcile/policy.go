// Package reconcile installs a staged tree of files into a project without
// silently losing the user's edits. It prunes the staged tree, then copies
// it file by file under a Policy, backing up anything it would overwrite.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/entalpic/siesta/pkg/errors"
)

// Policy decides what happens when a destination file already exists.
type Policy int

const (
	// Force overwrites existing files unconditionally.
	Force Policy = iota
	// Preserve skips identical files and backs up differing ones before
	// overwriting them.
	Preserve
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Force:
		return "force"
	case Preserve:
		return "preserve"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "force" or "preserve".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "force", "overwrite":
		return Force, nil
	case "preserve", "backup":
		return Preserve, nil
	}
	return 0, errors.NewConfigError("reconcile", fmt.Sprintf("unknown policy %q", s), errors.ErrInvalidInput)
}
