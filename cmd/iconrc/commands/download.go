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

// NewDownloadCmd creates the download command
func NewDownloadCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <names...>",
		Short: "Download icons by name",
		Long: `Download writes each named icon to <output>/<name>.svg.
Names may be given with or without the .svg extension. A missing icon does
not stop the others; the command fails if any icon could not be written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			o.Logger.Header("downloading icons")
			return downloadNames(ctx, o, args, o.OutputDir(output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")

	return cmd
}
