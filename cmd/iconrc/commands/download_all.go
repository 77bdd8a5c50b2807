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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/cmd/iconrc/prompt"
	"github.com/walteh/iconrc/pkg/export"
	"gitlab.com/tozd/go/errors"
)

// NewDownloadAllCmd creates the download-all command
func NewDownloadAllCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download-all",
		Short: "Download every available icon",
		Long: `Download-all exports every icon of the configured source to the output
directory, one at a time, and reports the icons that failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := o.OutputDir(output)

			o.Logger.Header("downloading all icons")

			var bar prompt.Progress
			exporter := o.Exporter(
				export.WithOnStart(func(total int) {
					bar = o.Prompter.Progress("Downloading icons", total)
				}),
				export.WithOnResult(func(export.Result) {
					bar.Increment()
				}),
			)

			summary, err := exporter.ExportAll(ctx, dir)
			if bar != nil {
				bar.Stop()
			}
			if err != nil {
				return errors.Errorf("downloading icons: %w", err)
			}

			red := color.New(color.FgRed)
			fmt.Fprintln(o.Out)
			o.Logger.Successf("Download complete: %d of %d icons", summary.Succeeded, summary.Total)
			if len(summary.Failures) > 0 {
				fmt.Fprintf(o.Out, "Failed downloads: %s\n", red.Sprint(len(summary.Failures)))
				for _, failure := range summary.Failures {
					fmt.Fprintf(o.Out, "  - %s\n", red.Sprint(failure))
				}
			}
			fmt.Fprintf(o.Out, "Output directory: %s\n", color.New(color.FgCyan).Sprint(dir))

			if summary.Failed() > 0 {
				return errors.Errorf("%d of %d icons failed", summary.Failed(), summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")

	return cmd
}
