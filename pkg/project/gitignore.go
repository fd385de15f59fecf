package project

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/internal/transport"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/reconcile"
)

// gitignoreHeader precedes the downloaded template.
const gitignoreHeader = "\n# Custom\n.vscode/\n.DS_Store\n"

// FetchGitignoreTemplate downloads the gitignore template at url.
func FetchGitignoreTemplate(ctx context.Context, client *transport.Client, url string) ([]byte, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapResource("fetch", "gitignore template", url, err)
	}
	return transport.ReadBody(resp, "github")
}

// WriteGitignore writes dir/.gitignore from template, after siesta's own
// entries. An existing file is backed up first; the backup path is
// returned, or "" when there was nothing to back up.
func WriteGitignore(fs afero.Fs, dir string, template []byte) (string, error) {
	path := filepath.Join(dir, ".gitignore")

	var backup string
	if ok, err := afero.Exists(fs, path); err != nil {
		return "", errors.WrapIO("stat", path, err)
	} else if ok {
		if backup, err = reconcile.Backup(fs, path); err != nil {
			return "", err
		}
	}

	data := append([]byte(gitignoreHeader), template...)
	if err := afero.WriteFile(fs, path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return backup, nil
}
