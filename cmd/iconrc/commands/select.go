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
	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
)

// NewSelectCmd creates the interactive select command
func NewSelectCmd(o *opts.RootOpts) *cobra.Command {
	var (
		output string
		search string
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick icons to download from a list",
		Long: `Select shows the available icons (optionally filtered with --search)
in a multi-select list and downloads the chosen ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			records, err := o.Catalog.Search(ctx, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				o.Logger.Warning("No icons found!")
				return nil
			}

			labels := make([]string, 0, len(records))
			byLabel := make(map[string]string, len(records))
			for _, r := range records {
				l := label(r)
				labels = append(labels, l)
				byLabel[l] = r.Name
			}

			chosen, err := o.Prompter.MultiSelect("Select icons to download", labels)
			if err != nil {
				return err
			}
			if len(chosen) == 0 {
				o.Logger.Warning("No icons selected!")
				return nil
			}

			names := make([]string, 0, len(chosen))
			for _, l := range chosen {
				names = append(names, byLabel[l])
			}

			o.Logger.Header("downloading selected icons")
			return downloadNames(ctx, o, names, o.OutputDir(output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only offer icons whose name contains this pattern")

	return cmd
}
