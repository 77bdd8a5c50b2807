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
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/log"
)

// NewSearchCmd creates the interactive search command
func NewSearchCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search icons interactively",
		Long: `Search asks for a pattern, lets you pick one of the matching icons,
previews it and offers to download it. Enter 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := o.OutputDir(output)

			for {
				input, err := o.Prompter.Text("🔍 Search icons (or 'quit' to exit)")
				if err != nil {
					return err
				}

				query := strings.TrimSpace(input)
				if strings.EqualFold(query, "quit") {
					return nil
				}
				if query == "" {
					continue
				}

				results, err := o.Catalog.Search(ctx, query)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					o.Logger.Warning("No icons found!")
					continue
				}

				fmt.Fprintf(o.Out, "\n%s %d\n", color.New(color.Bold, color.FgGreen).Sprint("Found:"), len(results))

				choice, err := o.Prompter.Select("Select an icon to preview", icon.Names(results))
				if err != nil {
					return err
				}

				if err := showPreview(ctx, o, choice); err != nil {
					o.Logger.Errorf("previewing %s: %s", choice, err)
					continue
				}

				download, err := o.Prompter.Confirm("Download this icon?", false)
				if err != nil {
					return err
				}
				if !download {
					continue
				}

				dest := filepath.Join(dir, choice+icon.Extension)
				n, err := o.Exporter().Download(ctx, choice, dest)
				o.Logger.LogIconOperation(ctx, log.IconOperation{Name: choice, Path: dest, Bytes: n, Err: err})
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")

	return cmd
}
