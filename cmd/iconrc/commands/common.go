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
package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/pkg/export"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// logResult forwards exporter results to the console logger.
func logResult(ctx context.Context, l *log.Logger) func(export.Result) {
	return func(r export.Result) {
		l.LogIconOperation(ctx, log.IconOperation{
			Name:  r.Name,
			Path:  r.Path,
			Bytes: r.Bytes,
			Err:   r.Err,
		})
	}
}

// 📥 downloadNames exports names into dir and prints a per-icon report.
// It fails when any icon could not be exported.
func downloadNames(ctx context.Context, o *opts.RootOpts, names []string, dir string) error {
	o.Logger.StartBatch(ctx, log.BatchOperation{
		Source:      o.Catalog.Source().Name(),
		Destination: dir,
		Total:       len(names),
	})

	_, err := o.Exporter(export.WithOnResult(logResult(ctx, o.Logger))).ExportMany(ctx, names, dir)
	succeeded, failed := o.Logger.EndBatch(ctx)
	if err != nil {
		return errors.Errorf("downloading icons: %w", err)
	}

	fmt.Fprintf(o.Out, "Output directory: %s\n", color.New(color.FgCyan).Sprint(dir))

	if failed > 0 {
		return errors.Errorf("%d of %d icons failed", failed, succeeded+failed)
	}
	return nil
}

// label renders a record for pickers and listings.
func label(r icon.Record) string {
	if !r.HasSize() {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, humanize.Bytes(r.SizeBytes()))
}
