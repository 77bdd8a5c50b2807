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
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// DefaultDirectoryPattern matches icon files directly inside the directory.
const DefaultDirectoryPattern = "*" + icon.Extension

func init() {
	source.Register(config.KindDirectory, func(ctx context.Context, cfg *config.Source) (source.Source, error) {
		return NewDirectory(afero.NewOsFs(), cfg.Path, cfg.Pattern), nil
	})
}

// 📁 Directory serves the icon files found directly inside one directory
type Directory struct {
	fs      afero.Fs
	root    string
	pattern string
}

var _ source.Source = (*Directory)(nil)

// 🏭 NewDirectory creates a directory source. An empty pattern means DefaultDirectoryPattern.
func NewDirectory(fs afero.Fs, root, pattern string) *Directory {
	if pattern == "" {
		pattern = DefaultDirectoryPattern
	}
	return &Directory{fs: fs, root: root, pattern: pattern}
}

// Name implements source.Source.
func (d *Directory) Name() string {
	return "directory:" + d.root
}

// 📂 Enumerate lists the immediate children of the directory. Subdirectories
// and files that do not match the pattern are skipped.
func (d *Directory) Enumerate(ctx context.Context) ([]icon.Record, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := afero.ReadDir(d.fs, d.root)
	if err != nil {
		return nil, icon.NewError(icon.ErrSourceUnavailable, "enumerate", d.root, err)
	}

	records := make([]icon.Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.Mode()&os.ModeSymlink != 0 {
			// follow links so a linked icon is listed like a regular file
			target, err := d.fs.Stat(filepath.Join(d.root, name))
			if err != nil {
				logger.Debug().Str("name", name).Err(err).Msg("skipping broken link")
				continue
			}
			entry = target
		}
		if !entry.Mode().IsRegular() {
			continue
		}
		ok, err := doublestar.Match(d.pattern, name)
		if err != nil {
			return nil, icon.NewError(icon.ErrParseFailure, "enumerate", d.pattern, err)
		}
		if !ok || !icon.IsIconFile(name) {
			continue
		}
		records = append(records, icon.Record{
			Name:    icon.Stem(name),
			Locator: filepath.Join(d.root, name),
		})
	}

	logger.Debug().Str("root", d.root).Int("count", len(records)).Msg("enumerated directory")

	return icon.SortUnique(records), nil
}

// 📄 Fetch opens the file at locator
func (d *Directory) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	info, err := d.fs.Stat(locator)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, icon.NewError(icon.ErrNotFound, "fetch", locator, nil)
		}
		return nil, icon.NewError(icon.ErrIOFailure, "fetch", locator, err)
	}
	if info.IsDir() {
		return nil, icon.NewError(icon.ErrNotFound, "fetch", locator, errors.New("is a directory"))
	}

	f, err := d.fs.Open(locator)
	if err != nil {
		return nil, icon.NewError(icon.ErrIOFailure, "fetch", locator, err)
	}
	return f, nil
}
