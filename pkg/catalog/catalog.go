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
package catalog

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/source"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
)

// 📚 Catalog answers list, search and resolve queries against one source.
// Every call re-enumerates the source; nothing is cached.
type Catalog struct {
	src    source.Source
	ignore []string
}

// 🏭 New creates a catalog over src. Records whose name or file name matches
// one of the ignore globs are hidden from every query.
func New(src source.Source, ignore ...string) *Catalog {
	return &Catalog{src: src, ignore: ignore}
}

// Source returns the bound source.
func (c *Catalog) Source() source.Source {
	return c.src
}

// 📂 List returns every visible record, sorted by name
func (c *Catalog) List(ctx context.Context) ([]icon.Record, error) {
	records, err := c.src.Enumerate(ctx)
	if err != nil {
		return nil, errors.Errorf("listing icons: %w", err)
	}

	if len(c.ignore) == 0 {
		return records, nil
	}

	visible := records[:0:0]
	for _, r := range records {
		skip, err := c.ignored(r)
		if err != nil {
			return nil, err
		}
		if !skip {
			visible = append(visible, r)
		}
	}

	zerolog.Ctx(ctx).Debug().Int("total", len(records)).Int("visible", len(visible)).Msg("applied ignore patterns")

	return visible, nil
}

// ignored reports whether r matches an ignore glob. A malformed glob is a
// parse failure.
func (c *Catalog) ignored(r icon.Record) (bool, error) {
	for _, pattern := range c.ignore {
		for _, name := range []string{r.Name, r.Filename()} {
			ok, err := doublestar.Match(pattern, name)
			if err != nil {
				return false, icon.NewError(icon.ErrParseFailure, "ignore", pattern, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// 🔍 Search returns the records whose name contains pattern, ignoring case
func (c *Catalog) Search(ctx context.Context, pattern string) ([]icon.Record, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(records, pattern), nil
}

// 🎯 Resolve finds the record named name, with or without the .svg extension
func (c *Catalog) Resolve(ctx context.Context, name string) (icon.Record, error) {
	records, err := c.List(ctx)
	if err != nil {
		return icon.Record{}, err
	}

	r, ok := Find(records, name)
	if !ok {
		return icon.Record{}, icon.IconNotFound(name)
	}
	return r, nil
}

// 📄 Content resolves name and returns its raw bytes
func (c *Catalog) Content(ctx context.Context, name string) ([]byte, error) {
	r, err := c.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err := source.ReadAll(ctx, c.src, r.Locator)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", r.Name, err)
	}
	return data, nil
}

// Filter keeps the records whose name contains pattern under Unicode case
// folding. Order is preserved; an empty pattern keeps everything.
func Filter(records []icon.Record, pattern string) []icon.Record {
	if pattern == "" {
		return records
	}

	fold := cases.Fold()
	needle := fold.String(pattern)

	matches := []icon.Record{}
	for _, r := range records {
		if strings.Contains(fold.String(icon.Stem(r.Name)), needle) {
			matches = append(matches, r)
		}
	}
	return matches
}

// Find looks up name in a sorted listing.
func Find(records []icon.Record, name string) (icon.Record, bool) {
	want := strings.TrimSuffix(name, icon.Extension)
	if want == "" {
		return icon.Record{}, false
	}
	for _, r := range records {
		if r.Name == want {
			return r, true
		}
	}
	return icon.Record{}, false
}
