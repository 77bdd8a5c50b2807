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
package source

import (
	"context"
	"io"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/icon"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Source is the interface for icon backends
type Source interface {
	// 📝 Name describes where the icons come from
	Name() string

	// 📂 Enumerate returns every icon the backend offers, sorted by name and unique
	Enumerate(ctx context.Context) ([]icon.Record, error)

	// 📄 Fetch opens the raw content behind a record's locator
	Fetch(ctx context.Context, locator string) (io.ReadCloser, error)
}

// 🏭 Factory creates a new source from its configuration
type Factory func(ctx context.Context, cfg *config.Source) (Source, error)

var (
	// 🗺️ sources is a map of source kinds to factories
	sources = make(map[string]Factory)
)

// 📝 Register registers a source factory
func Register(kind string, factory Factory) {
	sources[kind] = factory
}

// 🎯 Get returns a source factory by kind
func Get(kind string) Factory {
	return sources[kind]
}

// Kinds returns the registered kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(sources))
	for k := range sources {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// 🏗️ New builds the source selected by cfg.Kind
func New(ctx context.Context, cfg *config.Source) (Source, error) {
	if cfg == nil {
		return nil, errors.New("no source configured")
	}

	factory := Get(cfg.Kind)
	if factory == nil {
		return nil, errors.Errorf("unknown source kind %q (registered: %v)", cfg.Kind, Kinds())
	}

	src, err := factory(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("creating %s source: %w", cfg.Kind, err)
	}

	zerolog.Ctx(ctx).Debug().Str("kind", cfg.Kind).Str("source", src.Name()).Msg("source ready")

	return src, nil
}

// 📥 DownloadFile downloads a file from a URL, sending userAgent when set.
// A 404 is reported as icon.ErrNotFound; any other failure is icon.ErrTransportFailure.
func DownloadFile(ctx context.Context, client *http.Client, url, userAgent string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, icon.NewError(icon.ErrTransportFailure, "fetch", url, errors.Errorf("creating request: %w", err))
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, icon.NewError(icon.ErrTransportFailure, "fetch", url, errors.Errorf("making request: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, icon.NewError(icon.ErrNotFound, "fetch", url, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, icon.NewError(icon.ErrTransportFailure, "fetch", url, errors.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	return resp.Body, nil
}

// ReadAll fetches locator from src and reads it to the end.
func ReadAll(ctx context.Context, src Source, locator string) ([]byte, error) {
	rc, err := src.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, icon.NewError(icon.ErrIOFailure, "fetch", locator, err)
	}
	return data, nil
}
