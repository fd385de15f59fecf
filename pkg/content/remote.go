package content

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/entalpic/siesta/internal/credentials"
	"github.com/entalpic/siesta/internal/github"
	"github.com/entalpic/siesta/pkg/alerts"
	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
	"github.com/entalpic/siesta/pkg/logging"
)

// RepositoryClient is the part of the GitHub client a Remote needs.
type RepositoryClient interface {
	ListContents(ctx context.Context, path, ref string) ([]github.ContentItem, error)
	Download(ctx context.Context, path, ref string) ([]byte, error)
}

// Remote fetches content from the siesta GitHub repository.
type Remote struct {
	creds       credentials.Provider
	repository  string
	baseURL     string
	concurrency int
	client      RepositoryClient
	messenger   alerts.Messenger
	logger      *zerolog.Logger
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithRepository fetches from another owner/name repository.
func WithRepository(repo string) RemoteOption {
	return func(r *Remote) { r.repository = repo }
}

// WithBaseURL points the GitHub client at another API root.
func WithBaseURL(u string) RemoteOption {
	return func(r *Remote) { r.baseURL = u }
}

// WithConcurrency bounds parallel downloads. Values below 1 mean 1.
func WithConcurrency(n int) RemoteOption {
	return func(r *Remote) { r.concurrency = n }
}

// WithClient uses c instead of building a GitHub client.
func WithClient(c RepositoryClient) RemoteOption {
	return func(r *Remote) { r.client = c }
}

// WithMessenger reports download progress to m.
func WithMessenger(m alerts.Messenger) RemoteOption {
	return func(r *Remote) { r.messenger = m }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zerolog.Logger) RemoteOption {
	return func(r *Remote) { r.logger = l }
}

// NewRemote creates a Remote that authenticates with creds.
func NewRemote(creds credentials.Provider, opts ...RemoteOption) *Remote {
	r := &Remote{
		creds:       creds,
		repository:  constants.Repository,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.messenger = alerts.OrDiscard(r.messenger)
	if r.logger == nil {
		l := logging.Component("content")
		r.logger = &l
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	return r
}

// Fetch implements Source. A missing credential aborts before any request.
func (r *Remote) Fetch(ctx context.Context, contentPath, ref string) ([]FileEntry, error) {
	token, err := credentials.Require(ctx, r.creds)
	if err != nil {
		return nil, err
	}
	client, err := r.repositoryClient(token)
	if err != nil {
		return nil, err
	}

	files, isFile, err := r.discover(ctx, client, contentPath, ref)
	if err != nil {
		return nil, err
	}
	extra := extraPath(contentPath, isFile || LooksLikeFile(contentPath))

	entries := make([]FileEntry, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, p := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Join(errors.ErrCanceled, err)
			}
			r.messenger.Progress(fmt.Sprintf("Downloading contents of '%s'", p))
			data, err := client.Download(gctx, p, ref)
			if err != nil {
				return err
			}
			entries[i] = FileEntry{Path: Relative(extra, p), Content: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("repository", r.repository).
		Str("path", contentPath).
		Str("ref", ref).
		Int("files", len(entries)).
		Msg("fetched remote content")
	r.messenger.Info(fmt.Sprintf("Downloaded contents of 'https://github.com/%s/%s'", r.repository, contentPath))
	return entries, nil
}

// discover expands directories breadth-first and returns file paths in
// discovery order.
func (r *Remote) discover(ctx context.Context, client RepositoryClient, contentPath, ref string) ([]string, bool, error) {
	queue, err := client.ListContents(ctx, contentPath, ref)
	if err != nil {
		return nil, false, err
	}
	isFile := len(queue) == 1 && !queue[0].IsDir() && queue[0].Path == contentPath

	var files []string
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if !item.IsDir() {
			files = append(files, item.Path)
			continue
		}
		children, err := client.ListContents(ctx, item.Path, ref)
		if err != nil {
			return nil, false, err
		}
		queue = append(queue, children...)
	}
	return files, isFile, nil
}

func (r *Remote) repositoryClient(token string) (RepositoryClient, error) {
	if r.client != nil {
		return r.client, nil
	}
	var opts []github.Option
	if r.baseURL != "" {
		opts = append(opts, github.WithBaseURL(r.baseURL))
	}
	return github.NewClient(r.repository, credentials.Static(token).Credential, opts...)
}
