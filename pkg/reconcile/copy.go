package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

// Hooks observe the engine file by file. Any of them may be nil.
type Hooks struct {
	OnWritten  func(dst string)
	OnSkipped  func(dst string)
	OnBackedUp func(dst, backup string)
}

// Report lists what CopyTree did, by destination path.
type Report struct {
	Written  []string
	Skipped  []string
	BackedUp map[string]string
}

// Engine copies staged trees into destination trees.
type Engine struct {
	FS        afero.Fs
	Messenger alerts.Messenger
	Logger    *zerolog.Logger
	Hooks     Hooks
}

// NewEngine returns an Engine on fs that reports to m.
func NewEngine(fs afero.Fs, m alerts.Messenger) *Engine {
	l := logging.Component("reconcile")
	return &Engine{FS: fs, Messenger: m, Logger: &l}
}

// CopyTree copies every file under src to the same relative path under dst.
// dst must exist. Each file is replaced atomically; the tree as a whole is
// not, and a canceled context leaves the files copied so far in place.
func (e *Engine) CopyTree(ctx context.Context, src, dst string, policy Policy) (*Report, error) {
	info, err := e.FS.Stat(dst)
	if err != nil || !info.IsDir() {
		return nil, errors.NewDestinationError("folder", dst)
	}

	report := &Report{BackedUp: map[string]string{}}
	m := alerts.OrDiscard(e.Messenger)
	logger := e.logger()

	err = afero.Walk(e.FS, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.WrapIO("walk", path, err)
		}
		if cerr := ctx.Err(); cerr != nil {
			return errors.Join(errors.ErrCanceled, cerr)
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		action, backup, err := e.copyFile(path, target, info.Mode().Perm(), policy)
		if err != nil {
			return err
		}
		switch action {
		case actionSkipped:
			report.Skipped = append(report.Skipped, target)
			logger.Debug().Str("path", target).Msg("identical, skipped")
			if e.Hooks.OnSkipped != nil {
				e.Hooks.OnSkipped(target)
			}
			return nil
		case actionBackedUp:
			report.BackedUp[target] = backup
			m.Warn(fmt.Sprintf("Backing up %s to %s", target, backup))
			if e.Hooks.OnBackedUp != nil {
				e.Hooks.OnBackedUp(target, backup)
			}
		}
		report.Written = append(report.Written, target)
		logger.Debug().Str("path", target).Stringer("policy", policy).Msg("written")
		if e.Hooks.OnWritten != nil {
			e.Hooks.OnWritten(target)
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, nil
}

type action int

const (
	actionWritten action = iota
	actionSkipped
	actionBackedUp
)

func (e *Engine) copyFile(src, dst string, perm os.FileMode, policy Policy) (action, string, error) {
	data, err := afero.ReadFile(e.FS, src)
	if err != nil {
		return 0, "", errors.WrapIO("read", src, err)
	}

	act := actionWritten
	var backup string
	if policy == Preserve {
		existing, err := afero.ReadFile(e.FS, dst)
		switch {
		case err == nil && bytes.Equal(existing, data):
			return actionSkipped, "", nil
		case err == nil:
			backup, err = Backup(e.FS, dst)
			if err != nil {
				return 0, "", err
			}
			act = actionBackedUp
		case !os.IsNotExist(err):
			return 0, "", errors.WrapIO("read", dst, err)
		}
	}

	if err := e.FS.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return 0, "", errors.WrapIO("create", filepath.Dir(dst), err)
	}
	if err := writeAtomic(e.FS, dst, data, perm); err != nil {
		return 0, "", errors.WrapIO("write", dst, err)
	}
	return act, backup, nil
}

func (e *Engine) logger() *zerolog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.Default()
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place.
func writeAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(name)
		return err
	}
	if perm == 0 {
		perm = constants.FilePermissions
	}
	if err := fs.Chmod(name, perm); err != nil {
		_ = fs.Remove(name)
		return err
	}
	if err := fs.Rename(name, path); err != nil {
		_ = fs.Remove(name)
		return err
	}
	return nil
}
