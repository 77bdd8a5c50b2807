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
	"archive/tar"
	"bufio"
	"context"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// DefaultArchivePattern matches icon files at any depth of the archive.
const DefaultArchivePattern = "**/*" + icon.Extension

func init() {
	source.Register(config.KindArchive, func(ctx context.Context, cfg *config.Source) (source.Source, error) {
		return NewArchive(afero.NewOsFs(), cfg.Path, cfg.Pattern), nil
	})
}

// 📦 Archive serves icon entries of a gzip compressed tarball.
// The archive is streamed on every call and never held in memory.
type Archive struct {
	fs      afero.Fs
	path    string
	pattern string
}

var _ source.Source = (*Archive)(nil)

// 🏭 NewArchive creates an archive source. An empty pattern means DefaultArchivePattern.
func NewArchive(fs afero.Fs, path, pattern string) *Archive {
	if pattern == "" {
		pattern = DefaultArchivePattern
	}
	return &Archive{fs: fs, path: path, pattern: pattern}
}

// Name implements source.Source.
func (a *Archive) Name() string {
	return "archive:" + a.path
}

// stream is an open tar reader over the archive file.
type stream struct {
	*tar.Reader
	gz   *gzip.Reader
	file afero.File
}

func (s *stream) Close() error {
	gzErr := s.gz.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// entryReader hands one entry's bytes to the caller and owns the stream.
type entryReader struct {
	io.Reader
	s *stream
}

func (e *entryReader) Close() error {
	return e.s.Close()
}

// 🔓 open checks the gzip magic number and starts a tar stream
func (a *Archive) open(op string, unavailable error) (*stream, error) {
	f, err := a.fs.Open(a.path)
	if err != nil {
		return nil, icon.NewError(unavailable, op, a.path, err)
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		f.Close()
		return nil, icon.NewError(icon.ErrParseFailure, op, a.path, errors.New("not a gzip archive"))
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, icon.NewError(icon.ErrParseFailure, op, a.path, err)
	}

	return &stream{Reader: tar.NewReader(gz), gz: gz, file: f}, nil
}

// 🔄 next advances to the next regular file entry
func (s *stream) next() (string, error) {
	for {
		hdr, err := s.Next()
		if err != nil {
			return "", err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		return strings.TrimPrefix(hdr.Name, "./"), nil
	}
}

// 📂 Enumerate lists every regular entry that matches the pattern
func (a *Archive) Enumerate(ctx context.Context) ([]icon.Record, error) {
	logger := zerolog.Ctx(ctx)

	s, err := a.open("enumerate", icon.ErrSourceUnavailable)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var records []icon.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("enumerating archive: %w", err)
		}

		name, err := s.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, icon.NewError(icon.ErrParseFailure, "enumerate", a.path, err)
		}

		ok, err := doublestar.Match(a.pattern, name)
		if err != nil {
			return nil, icon.NewError(icon.ErrParseFailure, "enumerate", a.pattern, err)
		}
		if !ok || !icon.IsIconFile(name) {
			continue
		}

		records = append(records, icon.Record{
			Name:    icon.Stem(name),
			Locator: name,
		})
	}

	logger.Debug().Str("archive", a.path).Int("count", len(records)).Msg("enumerated archive")

	return icon.SortUnique(records), nil
}

// 📄 Fetch streams the entry at locator. An exact entry path wins; otherwise the
// first entry whose final path component equals the locator's is used.
func (a *Archive) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	want := strings.TrimPrefix(locator, "./")
	base := path.Base(want)

	rc, fallback, err := a.seek(ctx, func(name string) bool { return name == want }, base)
	if err != nil || rc != nil {
		return rc, err
	}

	if fallback == "" {
		return nil, icon.NewError(icon.ErrNotFound, "fetch", locator, nil)
	}

	zerolog.Ctx(ctx).Debug().Str("locator", locator).Str("entry", fallback).Msg("matched archive entry by base name")

	rc, _, err = a.seek(ctx, func(name string) bool { return name == fallback }, "")
	if err != nil || rc != nil {
		return rc, err
	}
	return nil, icon.NewError(icon.ErrNotFound, "fetch", locator, nil)
}

// seek streams until match accepts an entry and returns a reader positioned on it.
// When nothing matches, it reports the first entry whose base name equals base.
func (a *Archive) seek(ctx context.Context, match func(string) bool, base string) (io.ReadCloser, string, error) {
	s, err := a.open("fetch", icon.ErrIOFailure)
	if err != nil {
		return nil, "", err
	}

	fallback := ""
	for {
		if err := ctx.Err(); err != nil {
			s.Close()
			return nil, "", errors.Errorf("reading archive: %w", err)
		}

		name, err := s.next()
		if err == io.EOF {
			s.Close()
			return nil, fallback, nil
		}
		if err != nil {
			s.Close()
			return nil, "", icon.NewError(icon.ErrParseFailure, "fetch", a.path, err)
		}

		if match(name) {
			return &entryReader{Reader: s.Reader, s: s}, "", nil
		}
		if fallback == "" && base != "" && path.Base(name) == base {
			fallback = name
		}
	}
}
