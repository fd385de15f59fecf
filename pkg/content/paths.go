package content

import (
	"path"
	"regexp"
	"strings"
)

var fileLike = regexp.MustCompile(`^.+\.\w+`)

// LooksLikeFile reports whether the last segment of contentPath has a file
// extension.
func LooksLikeFile(contentPath string) bool {
	segments := strings.Split(contentPath, "/")
	return fileLike.MatchString(segments[len(segments)-1])
}

// ExtraPath returns the prefix to strip from fetched paths. For a file it is
// the parent directory, for a directory the path itself with a trailing
// slash.
func ExtraPath(contentPath string) string {
	return extraPath(contentPath, LooksLikeFile(contentPath))
}

func extraPath(contentPath string, isFile bool) string {
	if isFile {
		dir := path.Dir(contentPath)
		if dir == "." {
			return ""
		}
		return dir
	}
	if !strings.HasSuffix(contentPath, "/") {
		return contentPath + "/"
	}
	return contentPath
}

// Relative strips extra from p and any leading slash left behind.
func Relative(extra, p string) string {
	if extra != "" {
		p = strings.TrimPrefix(p, extra)
	}
	return strings.TrimPrefix(p, "/")
}
