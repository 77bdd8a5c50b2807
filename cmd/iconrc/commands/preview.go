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

	"github.com/spf13/cobra"
	"github.com/walteh/iconrc/cmd/iconrc/opts"
	"github.com/walteh/iconrc/pkg/preview"
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Show an icon's SVG source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPreview(cmd.Context(), o, args[0])
		},
	}

	return cmd
}

// showPreview fetches name and renders it to the console.
func showPreview(ctx context.Context, o *opts.RootOpts, name string) error {
	content, err := o.Catalog.Content(ctx, name)
	if err != nil {
		return err
	}

	p, err := preview.Parse(name, content)
	if err != nil {
		return err
	}

	p.Render(o.Out)
	return nil
}
