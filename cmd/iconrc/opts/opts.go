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
package opts

import (
	"io"

	"github.com/spf13/afero"
	"github.com/walteh/iconrc/cmd/iconrc/prompt"
	"github.com/walteh/iconrc/pkg/catalog"
	"github.com/walteh/iconrc/pkg/config"
	"github.com/walteh/iconrc/pkg/export"
	"github.com/walteh/iconrc/pkg/log"
)

// RootOpts holds what every command needs. It is filled in by the root
// command once flags are parsed.
type RootOpts struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Logger   *log.Logger
	Prompter prompt.Prompter
	Out      io.Writer
	Fs       afero.Fs
}

// Exporter builds an exporter over the catalog writing through Fs.
func (o *RootOpts) Exporter(options ...export.Option) *export.Exporter {
	if o.Fs != nil {
		options = append([]export.Option{export.WithFs(o.Fs)}, options...)
	}
	return export.New(o.Catalog, options...)
}

// OutputDir returns flag when set, otherwise the configured output directory.
func (o *RootOpts) OutputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return o.Config.Output
}
