// Package githubtest serves an in-memory repository over the subset of the
// GitHub contents API that the github client uses.
package githubtest

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Repo is the fake repository content.
type Repo struct {
	// Files maps slash paths to file content, shared by every branch.
	Files map[string]string
	// Branches lists the known branches. Empty means just "main".
	Branches []string
	// Release is served as the latest release when set.
	Release string
	// Token, when set, is required as a bearer token.
	Token string
}

// Server wraps an httptest.Server with request bookkeeping.
type Server struct {
	*httptest.Server
	repo Repo

	mu       sync.Mutex
	requests []string
}

// NewServer starts a fake API for owner/name. Close it when done.
func NewServer(owner, name string, repo Repo) *Server {
	if len(repo.Branches) == 0 {
		repo.Branches = []string{"main"}
	}
	s := &Server{repo: repo}
	prefix := "/repos/" + owner + "/" + name + "/"
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()

		if repo.Token != "" && r.Header.Get("Authorization") != "Bearer "+repo.Token {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
		rest, ok := strings.CutPrefix(r.URL.Path, prefix)
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch {
		case rest == "branches":
			s.branches(w, r)
		case rest == "releases/latest":
			s.release(w, r)
		case strings.HasPrefix(rest, "contents"):
			s.contents(w, r, strings.Trim(strings.TrimPrefix(rest, "contents"), "/"))
		default:
			http.NotFound(w, r)
		}
	}))
	return s
}

// Requests returns the request paths seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) branches(w http.ResponseWriter, r *http.Request) {
	out := []map[string]string{}
	if r.URL.Query().Get("page") == "" || r.URL.Query().Get("page") == "1" {
		for _, b := range s.repo.Branches {
			out = append(out, map[string]string{"name": b})
		}
	}
	writeJSON(w, out)
}

func (s *Server) release(w http.ResponseWriter, r *http.Request) {
	if s.repo.Release == "" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{
		"tag_name":     s.repo.Release,
		"name":         s.repo.Release,
		"published_at": "2025-01-02T03:04:05Z",
	})
}

func (s *Server) contents(w http.ResponseWriter, r *http.Request, p string) {
	ref := r.URL.Query().Get("ref")
	if ref != "" && !slices.Contains(s.repo.Branches, ref) {
		http.Error(w, `{"message":"No commit found for the ref"}`, http.StatusNotFound)
		return
	}

	if content, ok := s.repo.Files[p]; ok {
		writeJSON(w, map[string]any{
			"type":     "file",
			"name":     path.Base(p),
			"path":     p,
			"size":     len(content),
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
		return
	}

	children := map[string]string{}
	for f := range s.repo.Files {
		rest, ok := strings.CutPrefix(f, p+"/")
		if p == "" {
			rest, ok = f, true
		}
		if !ok {
			continue
		}
		head, _, isDir := strings.Cut(rest, "/")
		kind := "file"
		if isDir {
			kind = "dir"
		}
		children[head] = kind
	}
	if len(children) == 0 {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	names := make([]string, 0, len(children))
	for n := range children {
		names = append(names, n)
	}
	sort.Strings(names)
	items := make([]map[string]any, 0, len(names))
	for _, n := range names {
		items = append(items, map[string]any{
			"type": children[n],
			"name": n,
			"path": strings.TrimPrefix(p+"/"+n, "/"),
		})
	}
	writeJSON(w, items)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
