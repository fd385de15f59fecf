// Package github is a small client for the parts of the GitHub REST API that
// siesta needs: repository contents, branches and releases.
package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/entalpic/siesta/internal/transport"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

const providerName = "github"

// ItemType classifies a contents API entry.
type ItemType string

// Item types returned by the contents API.
const (
	TypeFile    ItemType = "file"
	TypeDir     ItemType = "dir"
	TypeSymlink ItemType = "symlink"
	TypeSubmod  ItemType = "submodule"
)

// ContentItem is one entry of a contents API listing.
type ContentItem struct {
	Type        ItemType `json:"type"`
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	SHA         string   `json:"sha"`
	Size        int64    `json:"size"`
	DownloadURL string   `json:"download_url"`
	Encoding    string   `json:"encoding,omitempty"`
	Content     string   `json:"content,omitempty"`
}

// IsDir reports whether the item must be expanded.
func (i ContentItem) IsDir() bool { return i.Type == TypeDir }

// Branch is a repository branch.
type Branch struct {
	Name string `json:"name"`
}

// Release is a published release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Client talks to one repository.
type Client struct {
	baseURL string
	owner   string
	repo    string
	http    *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTransport replaces the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) { c.http = t }
}

// NewClient creates a client for repository "owner/name" authenticated by token.
func NewClient(repository string, token transport.TokenFunc, opts ...Option) (*Client, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, errors.NewConfigError("github", "repository must be owner/name, got "+strconv.Quote(repository), errors.ErrInvalidInput)
	}
	c := &Client{
		baseURL: constants.GitHubAPIURL,
		owner:   owner,
		repo:    name,
		http: transport.New(&transport.BearerAuth{},
			transport.WithToken(token),
			transport.WithAccept("application/vnd.github+json"),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Repository returns "owner/name".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// ListContents lists path at ref. A file path yields a single item.
func (c *Client) ListContents(ctx context.Context, path, ref string) ([]ContentItem, error) {
	resp, err := c.get(ctx, c.contentsURL(path, ref))
	if err != nil {
		return nil, err
	}
	body, err := transport.ReadBody(resp, providerName)
	if err != nil {
		return nil, c.notFound(ctx, err, path, ref)
	}

	var items []ContentItem
	if trimmed := strings.TrimSpace(string(body)); strings.HasPrefix(trimmed, "{") {
		var item ContentItem
		if err := decode(body, &item); err != nil {
			return nil, err
		}
		items = []ContentItem{item}
	} else if err := decode(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Download returns the bytes of the file at path and ref.
func (c *Client) Download(ctx context.Context, path, ref string) ([]byte, error) {
	items, err := c.ListContents(ctx, path, ref)
	if err != nil {
		return nil, err
	}
	if len(items) != 1 || items[0].Type != TypeFile {
		return nil, &errors.ResourceError{
			Operation: "download",
			Resource:  "file",
			ID:        path,
			Message:   "path is not a file",
			Err:       errors.ErrInvalidInput,
		}
	}
	item := items[0]

	// the contents API leaves content empty for files over 1MB
	if item.Encoding == "base64" && item.Content != "" {
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(item.Content, "\n", ""))
		if err != nil {
			return nil, errors.WrapParse("base64", path, err)
		}
		return data, nil
	}
	if item.DownloadURL == "" {
		return nil, errors.NewResourceError("download", "file", path, errors.New("no download URL"))
	}
	resp, err := c.get(ctx, item.DownloadURL)
	if err != nil {
		return nil, err
	}
	data, err := transport.ReadBody(resp, providerName)
	if err != nil {
		return nil, c.notFound(ctx, err, path, ref)
	}
	return data, nil
}

// ListBranches returns every branch name, following pagination.
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	const perPage = 100
	var names []string
	for page := 1; ; page++ {
		u := c.repoURL("branches") + "?per_page=" + strconv.Itoa(perPage) + "&page=" + strconv.Itoa(page)
		resp, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}
		var branches []Branch
		if err := transport.DecodeResponse(resp, providerName, &branches); err != nil {
			return nil, err
		}
		for _, b := range branches {
			names = append(names, b.Name)
		}
		if len(branches) < perPage {
			return names, nil
		}
	}
}

// LatestRelease returns the most recent published release.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {
	resp, err := c.get(ctx, c.repoURL("releases", "latest"))
	if err != nil {
		return nil, err
	}
	var release Release
	if err := transport.DecodeResponse(resp, providerName, &release); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, errors.NewNotFoundError("release", "latest")
		}
		return nil, err
	}
	return &release, nil
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	resp, err := c.http.Get(ctx, u)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Join(errors.ErrCanceled, ctx.Err())
		}
		var authErr *errors.AuthenticationError
		if errors.As(err, &authErr) {
			authErr.Provider = providerName
			return nil, authErr
		}
		return nil, &errors.APIError{
			Provider: providerName,
			Endpoint: u,
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// notFound turns a 404 into a NotFoundError telling a missing branch from
// a missing path.
func (c *Client) notFound(ctx context.Context, err error, path, ref string) error {
	if !isStatus(err, http.StatusNotFound) {
		return err
	}
	nf := &errors.NotFoundError{Resource: c.Repository(), ID: path, Kind: errors.KindPath, Ref: ref}
	if ref == "" {
		return nf
	}
	// a failed branch lookup keeps the path error
	branches, berr := c.ListBranches(ctx)
	if berr == nil && !slices.Contains(branches, ref) {
		return &errors.NotFoundError{Resource: c.Repository(), ID: ref, Kind: errors.KindBranch, Ref: ref}
	}
	return nf
}

func (c *Client) repoURL(parts ...string) string {
	return c.baseURL + "/repos/" + url.PathEscape(c.owner) + "/" + url.PathEscape(c.repo) + "/" + strings.Join(parts, "/")
}

func (c *Client) contentsURL(path, ref string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u := c.repoURL("contents", strings.Join(segments, "/"))
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}
	return u
}

func isStatus(err error, code int) bool {
	var apiErr *errors.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
