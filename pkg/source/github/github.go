// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/source"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

func init() {
	source.Register(config.KindGithub, func(ctx context.Context, cfg *config.Source) (source.Source, error) {
		return New(ctx, Options{
			Repo:      cfg.Repo,
			Ref:       cfg.Ref,
			Dir:       cfg.Dir,
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
			Token:     cfg.Token,
		})
	})
}

// ContentsClient defines the GitHub API operations we need
type ContentsClient interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// githubClientWrapper wraps the GitHub client to implement our interface
type githubClientWrapper struct {
	client *github.Client
}

func (w *githubClientWrapper) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	return w.client.Repositories.GetContents(ctx, owner, repo, path, opts)
}

// ⚙️ Options configures the remote backend
type Options struct {
	Repo       string // owner/name
	Ref        string // empty means the default branch
	Dir        string // directory holding the icons
	BaseURL    string // API root; empty means api.github.com
	UserAgent  string
	Token      string // sent as a bearer token when set
	HTTPClient *http.Client
}

// 🌐 RemoteAPI lists icons through the GitHub contents API and fetches them
// from their download URLs
type RemoteAPI struct {
	client    ContentsClient
	http      *http.Client
	owner     string
	repo      string
	ref       string
	dir       string
	userAgent string
}

var _ source.Source = (*RemoteAPI)(nil)

// 🏭 New creates a remote source
func New(ctx context.Context, opts Options) (*RemoteAPI, error) {
	owner, repo, err := parseRepo(opts.Repo)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// the token only goes to the API; download urls may point at any host
	apiClient := httpClient
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		apiClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), ts)
	}

	client := github.NewClient(apiClient)
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}
	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, errors.Errorf("parsing base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = base
	}

	return &RemoteAPI{
		client:    &githubClientWrapper{client: client},
		http:      httpClient,
		owner:     owner,
		repo:      repo,
		ref:       opts.Ref,
		dir:       strings.Trim(opts.Dir, "/"),
		userAgent: opts.UserAgent,
	}, nil
}

// 🔍 parseRepo splits owner/name
func parseRepo(name string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(name), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid repository name: %q", name)
	}
	return parts[0], parts[1], nil
}

// Name implements source.Source.
func (r *RemoteAPI) Name() string {
	ref := r.ref
	if ref == "" {
		ref = "HEAD"
	}
	return "github.com/" + r.owner + "/" + r.repo + "@" + ref + ":" + r.dir
}

// 📂 Enumerate issues one listing request and keeps the svg files
func (r *RemoteAPI) Enumerate(ctx context.Context) ([]icon.Record, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("repo", r.owner+"/"+r.repo).Str("ref", r.ref).Str("dir", r.dir).Msg("listing icons")

	// Check if context is already cancelled
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("context error: %w", err)
	}

	file, contents, _, err := r.client.GetContents(ctx, r.owner, r.repo, r.dir, &github.RepositoryContentGetOptions{
		Ref: r.ref,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Errorf("context error: %w", ctx.Err())
		}
		return nil, classifyListing(r.dir, err)
	}
	if file != nil {
		return nil, icon.NewError(icon.ErrParseFailure, "enumerate", r.dir, errors.New("listing returned a file, not a directory"))
	}

	records := make([]icon.Record, 0, len(contents))
	for _, content := range contents {
		if content.GetType() != "file" || !icon.IsIconFile(content.GetName()) {
			continue
		}
		if content.GetDownloadURL() == "" {
			logger.Debug().Str("name", content.GetName()).Msg("skipping entry without download url")
			continue
		}
		records = append(records, icon.Record{
			Name:    icon.Stem(content.GetName()),
			Size:    icon.SizePtr(uint64(content.GetSize())),
			Locator: content.GetDownloadURL(),
		})
	}

	logger.Debug().Int("count", len(records)).Msg("listed icons")

	return icon.SortUnique(records), nil
}

// classifyListing maps a listing error onto the icon error kinds.
func classifyListing(dir string, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return icon.NewError(icon.ErrParseFailure, "enumerate", dir, err)
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return icon.NewError(icon.ErrSourceUnavailable, "enumerate", dir, errors.Errorf("rate limited until %s: %w", rateErr.Rate.Reset.Time, err))
	}

	return icon.NewError(icon.ErrSourceUnavailable, "enumerate", dir, err)
}

// 📄 Fetch downloads the content at a download URL
func (r *RemoteAPI) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	zerolog.Ctx(ctx).Debug().Str("url", locator).Msg("fetching icon")
	return source.DownloadFile(ctx, r.http, locator, r.userAgent)
}
