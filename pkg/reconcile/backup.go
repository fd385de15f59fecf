package reconcile

import (
	"strconv"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/errors"
)

// BackupName returns the first free backup path for path: path.bak, then
// path.bak.1, path.bak.2 and so on.
func BackupName(fs afero.Fs, path string) (string, error) {
	candidate := path + ".bak"
	for n := 1; ; n++ {
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", errors.WrapIO("stat", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = path + ".bak." + strconv.Itoa(n)
	}
}

// Backup copies path to its BackupName and returns the backup path.
func Backup(fs afero.Fs, path string) (string, error) {
	name, err := BackupName(fs, path)
	if err != nil {
		return "", err
	}
	info, err := fs.Stat(path)
	if err != nil {
		return "", errors.WrapIO("stat", path, err)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	if err := writeAtomic(fs, name, data, info.Mode().Perm()); err != nil {
		return "", errors.WrapIO("backup", path, err)
	}
	return name, nil
}
