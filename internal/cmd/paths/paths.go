// Package paths resolves path flags given on the command line.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Expand resolves ~ and environment variables in p and cleans the result.
func Expand(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" {
		return xdg.Home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(xdg.Home, rest)
	}
	return filepath.Clean(p)
}
