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
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/pkg/icon"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var (
		asJSON bool
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available icons",
		Long: `List prints every icon the configured source offers, sorted by name.
With --search only icons whose name contains the pattern are shown.
With --json the names are printed as a JSON array.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if limit < 0 {
				return errors.Errorf("invalid --limit %d", limit)
			}

			records, err := o.Catalog.Search(ctx, search)
			if err != nil {
				return err
			}

			shown := records
			if limit > 0 && limit < len(records) {
				shown = records[:limit]
			}

			if asJSON {
				data, err := json.MarshalIndent(icon.Names(shown), "", "  ")
				if err != nil {
					return errors.Errorf("encoding json: %w", err)
				}
				fmt.Fprintln(o.Out, string(data))
				return nil
			}

			fmt.Fprintf(o.Out, "Found %d icons\n", len(records))
			for i, r := range shown {
				line := fmt.Sprintf("%3d. %s", i+1, color.New(color.FgCyan).Sprint(r.Name))
				if r.HasSize() {
					line += " " + color.New(color.Faint).Sprintf("(%s)", humanize.Bytes(r.SizeBytes()))
				}
				fmt.Fprintln(o.Out, line)
			}
			if rest := len(records) - len(shown); rest > 0 {
				fmt.Fprintln(o.Out, color.New(color.Faint).Sprintf("... and %d more", rest))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print names as a JSON array")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only icons whose name contains this pattern")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "show at most this many icons (0 means all)")

	return cmd
}
