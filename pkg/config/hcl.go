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
package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL.
// The variable `home` resolves to the user's home directory, so paths can
// be written as "${home}/icons".
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(home),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Source *struct {
			Kind      string `hcl:"kind,optional"`
			Path      string `hcl:"path,optional"`
			Pattern   string `hcl:"pattern,optional"`
			Repo      string `hcl:"repo,optional"`
			Ref       string `hcl:"ref,optional"`
			Dir       string `hcl:"dir,optional"`
			BaseURL   string `hcl:"base_url,optional"`
			UserAgent string `hcl:"user_agent,optional"`
		} `hcl:"source,block"`
		Output string   `hcl:"output,optional"`
		Ignore []string `hcl:"ignore,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Output: hclCfg.Output,
		Ignore: hclCfg.Ignore,
	}

	if hclCfg.Source != nil {
		cfg.Source = &Source{
			Kind:      hclCfg.Source.Kind,
			Path:      hclCfg.Source.Path,
			Pattern:   hclCfg.Source.Pattern,
			Repo:      hclCfg.Source.Repo,
			Ref:       hclCfg.Source.Ref,
			Dir:       hclCfg.Source.Dir,
			BaseURL:   hclCfg.Source.BaseURL,
			UserAgent: hclCfg.Source.UserAgent,
		}
	}

	return cfg, nil
}
