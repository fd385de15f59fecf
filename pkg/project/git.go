package project

import (
	"bufio"
	"bytes"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// RepositoryURL returns the https URL of the origin remote in dir's git
// configuration, or "" when there is none.
func RepositoryURL(fs afero.Fs, dir string) string {
	data, err := afero.ReadFile(fs, filepath.Join(dir, ".git", "config"))
	if err != nil {
		return ""
	}

	inOrigin := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(key) == "url" {
			return HTTPSURL(strings.TrimSpace(value))
		}
	}
	return ""
}

// HTTPSURL turns an ssh or https remote into a browsable https URL.
func HTTPSURL(remote string) string {
	remote = strings.TrimSuffix(strings.TrimSpace(remote), ".git")
	if u, err := url.Parse(remote); err == nil && u.Host != "" {
		return "https://" + u.Hostname() + u.Path
	}
	// scp-like syntax: git@github.com:owner/repo
	host, path, ok := strings.Cut(remote, ":")
	if !ok {
		return remote
	}
	if _, h, found := strings.Cut(host, "@"); found {
		host = h
	}
	return "https://" + host + "/" + strings.TrimPrefix(path, "/")
}
