package merge

import (
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// Markers are the literal lines delimiting a managed block.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers delimit the block of conf.py that siesta manages.
var DefaultMarkers = Markers{Start: constants.UpdateStartMarker, End: constants.UpdateEndMarker}

// Extract returns the text between the first Start and the last End of src.
func (m Markers) Extract(src string) (string, bool) {
	i := strings.Index(src, m.Start)
	if i < 0 {
		return "", false
	}
	from := i + len(m.Start)
	j := strings.LastIndex(src, m.End)
	if j <= from {
		return "", false
	}
	return src[from:j], true
}

// ReplaceBlock sets the interior of every Start/End block in dest to
// interior. Without a block, one is appended. The result ends with exactly
// one newline.
func (m Markers) ReplaceBlock(dest, interior string) string {
	var b strings.Builder
	found := false
	rest := dest
	for {
		i := strings.Index(rest, m.Start)
		if i < 0 {
			break
		}
		from := i + len(m.Start)
		j := strings.Index(rest[from:], m.End)
		if j < 0 {
			break
		}
		found = true
		b.WriteString(rest[:from])
		b.WriteString(interior)
		b.WriteString(m.End)
		rest = rest[from+j+len(m.End):]
	}
	b.WriteString(rest)

	out := b.String()
	if !found {
		out = dest + "\n" + m.Start + interior + m.End + "\n"
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// UpdateFile copies the block of srcText into the file at destPath. It
// reports whether the file changed. A source without a block is a no-op.
func (m Markers) UpdateFile(fs afero.Fs, srcText, destPath string) (bool, error) {
	interior, ok := m.Extract(srcText)
	if !ok {
		return false, nil
	}

	info, err := fs.Stat(destPath)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		return false, errors.NewDestinationError("file", destPath)
	}
	if err != nil {
		return false, errors.WrapIO("stat", destPath, err)
	}
	data, err := afero.ReadFile(fs, destPath)
	if err != nil {
		return false, errors.WrapIO("read", destPath, err)
	}

	updated := m.ReplaceBlock(string(data), interior)
	if updated == string(data) {
		return false, nil
	}
	if err := afero.WriteFile(fs, destPath, []byte(updated), info.Mode().Perm()); err != nil {
		return false, errors.WrapIO("write", destPath, err)
	}
	return true, nil
}
