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
package export

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/iconrc/pkg/catalog"
	"github.com/walteh/iconrc/pkg/icon"
	"gitlab.com/tozd/go/errors"
)

// 📦 Result is the outcome of exporting one icon
type Result struct {
	Name  string // Name as requested
	Path  string // Destination file, set on success
	Bytes int64  // Bytes written, set on success
	Err   error  // Failure cause; matches an icon.Err* kind
}

// OK reports whether the export succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// 📊 Summary aggregates an ExportAll run
type Summary struct {
	Total     int
	Succeeded int
	Failures  []string // "<name>: <error>"
}

// Failed returns the number of failed exports.
func (s Summary) Failed() int {
	return s.Total - s.Succeeded
}

// 🔧 Option configures an Exporter
type Option func(*Exporter)

// WithFs writes through fs instead of the operating system.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithOnStart registers a hook called once a batch knows how many icons it will export.
func WithOnStart(fn func(total int)) Option {
	return func(e *Exporter) { e.onStart = fn }
}

// WithOnResult registers a hook called after each item of a batch.
func WithOnResult(fn func(Result)) Option {
	return func(e *Exporter) { e.onResult = fn }
}

// 📤 Exporter writes icons from a catalog to disk, one at a time
type Exporter struct {
	catalog  *catalog.Catalog
	fs       afero.Fs
	onStart  func(total int)
	onResult func(Result)
}

// 🏭 New creates an exporter over c
func New(c *catalog.Catalog, opts ...Option) *Exporter {
	e := &Exporter{catalog: c, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func exportErr(name string, err error) error {
	return icon.NewError(icon.ErrExportFailure, "export", name, err)
}

// 📝 ExportOne fetches rec and writes it to dest, creating parent directories
// and replacing any existing file. The write goes through a temporary file in
// the same directory so dest is never left half written.
func (e *Exporter) ExportOne(ctx context.Context, rec icon.Record, dest string) (int64, error) {
	logger := zerolog.Ctx(ctx)

	rc, err := e.catalog.Source().Fetch(ctx, rec.Locator)
	if err != nil {
		return 0, exportErr(rec.Name, err)
	}
	defer rc.Close()

	dir := filepath.Dir(dest)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return 0, exportErr(rec.Name, icon.NewError(icon.ErrIOFailure, "mkdir", dir, err))
	}

	n, err := e.writeFileAtomic(dest, rc)
	if err != nil {
		return 0, exportErr(rec.Name, err)
	}

	logger.Debug().Str("name", rec.Name).Str("path", dest).Int64("bytes", n).Msg("exported icon")

	return n, nil
}

// writeFileAtomic copies r into a temp file next to path and renames it into place.
func (e *Exporter) writeFileAtomic(path string, r io.Reader) (int64, error) {
	tmp, err := afero.TempFile(e.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, icon.NewError(icon.ErrIOFailure, "write", path, errors.Errorf("creating temp file: %w", err))
	}
	tempPath := tmp.Name()

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		e.fs.Remove(tempPath) // Clean up temp file
		return 0, icon.NewError(icon.ErrIOFailure, "write", path, errors.Errorf("writing temp file: %w", err))
	}

	if err := e.fs.Chmod(tempPath, 0644); err != nil {
		e.fs.Remove(tempPath)
		return 0, icon.NewError(icon.ErrIOFailure, "write", path, errors.Errorf("setting mode: %w", err))
	}

	// Rename temp file to target
	if err := e.fs.Rename(tempPath, path); err != nil {
		e.fs.Remove(tempPath)
		return 0, icon.NewError(icon.ErrIOFailure, "write", path, errors.Errorf("renaming temp file: %w", err))
	}

	return n, nil
}

// 📥 Download resolves name and exports it to dest
func (e *Exporter) Download(ctx context.Context, name, dest string) (int64, error) {
	rec, err := e.catalog.Resolve(ctx, name)
	if err != nil {
		return 0, err
	}
	return e.ExportOne(ctx, rec, dest)
}

// 📚 ExportMany exports each requested name to dir/<name>.svg. A failing name
// never stops the batch; the returned error is only set when dir cannot be
// created, the listing fails or ctx is cancelled.
func (e *Exporter) ExportMany(ctx context.Context, names []string, dir string) (map[string]Result, error) {
	records, err := e.prepare(ctx, dir)
	if err != nil {
		return nil, err
	}

	if e.onStart != nil {
		e.onStart(len(names))
	}

	results := make(map[string]Result, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, errors.Errorf("exporting icons: %w", err)
		}

		var res Result
		if rec, ok := catalog.Find(records, name); ok {
			res = e.exportTo(ctx, name, rec, dir)
		} else {
			res = Result{Name: name, Err: icon.IconNotFound(name)}
		}

		results[name] = res
		e.report(ctx, res)
	}

	return results, nil
}

// 📦 ExportAll exports every listed icon to dir
func (e *Exporter) ExportAll(ctx context.Context, dir string) (Summary, error) {
	records, err := e.prepare(ctx, dir)
	if err != nil {
		return Summary{}, err
	}

	if e.onStart != nil {
		e.onStart(len(records))
	}

	summary := Summary{Total: len(records)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, errors.Errorf("exporting icons: %w", err)
		}

		res := e.exportTo(ctx, rec.Name, rec, dir)
		if res.OK() {
			summary.Succeeded++
		} else {
			summary.Failures = append(summary.Failures, rec.Name+": "+res.Err.Error())
		}
		e.report(ctx, res)
	}

	return summary, nil
}

// prepare creates dir and takes the listing used for the whole batch.
func (e *Exporter) prepare(ctx context.Context, dir string) ([]icon.Record, error) {
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return nil, icon.NewError(icon.ErrIOFailure, "mkdir", dir, err)
	}

	records, err := e.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (e *Exporter) exportTo(ctx context.Context, name string, rec icon.Record, dir string) Result {
	dest := filepath.Join(dir, rec.Filename())
	n, err := e.ExportOne(ctx, rec, dest)
	if err != nil {
		return Result{Name: name, Err: err}
	}
	return Result{Name: name, Path: dest, Bytes: n}
}

func (e *Exporter) report(ctx context.Context, res Result) {
	if !res.OK() {
		zerolog.Ctx(ctx).Debug().Str("name", res.Name).Err(res.Err).Msg("export failed")
	}
	if e.onResult != nil {
		e.onResult(res)
	}
}
