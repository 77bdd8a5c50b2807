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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ Source kinds understood by the source registry
const (
	KindDirectory = "directory"
	KindArchive   = "archive"
	KindGithub    = "github"
)

// Defaults for the remote backend and the export directory.
const (
	DefaultRepo      = "lucide-icons/lucide"
	DefaultRepoDir   = "icons"
	DefaultUserAgent = "iconrc/0.1"
	DefaultOutput    = "icons"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 Source selects and configures one icon backend
type Source struct {
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty" hcl:"kind,optional"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" hcl:"path,optional"`                   // Directory or archive path
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty" hcl:"pattern,optional"`       // Glob an entry must match
	Repo      string `json:"repo,omitempty" yaml:"repo,omitempty" toml:"repo,omitempty" hcl:"repo,optional"`                   // owner/name
	Ref       string `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty" hcl:"ref,optional"`                       // Branch, tag or commit
	Dir       string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty" hcl:"dir,optional"`                       // Directory inside the repo
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url,omitempty" hcl:"base_url,optional"`   // API root, for enterprise hosts
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent,omitempty" hcl:"user_agent,optional"`

	// Token is only ever read from the environment.
	Token string `json:"-" yaml:"-" toml:"-"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Source *Source  `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty" hcl:"source,block"`
	Output string   `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" hcl:"output,optional"`
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty" hcl:"ignore,optional"` // Globs hidden from listings

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration, fills defaults and normalizes paths
func (cfg *Config) Validate() error {
	if cfg.Source == nil {
		cfg.Source = &Source{}
	}
	src := cfg.Source

	if src.Kind == "" {
		src.Kind = inferKind(src.Path)
	}
	src.Kind = strings.ToLower(strings.TrimSpace(src.Kind))

	switch src.Kind {
	case KindDirectory, KindArchive:
		if src.Path == "" {
			return errors.Errorf("source.path is required for %s sources", src.Kind)
		}
		src.Path = filepath.Clean(src.Path)
	case KindGithub:
		if src.Repo == "" {
			src.Repo = DefaultRepo
		}
		parts := strings.Split(src.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return errors.Errorf("invalid source.repo %q (expected owner/name)", src.Repo)
		}
		if src.Dir == "" {
			src.Dir = DefaultRepoDir
		}
		src.Dir = strings.Trim(src.Dir, "/")
	default:
		return errors.Errorf("unknown source kind %q (expected %s, %s or %s)", src.Kind, KindDirectory, KindArchive, KindGithub)
	}

	if src.Pattern != "" && !doublestar.ValidatePattern(src.Pattern) {
		return errors.Errorf("invalid source.pattern %q", src.Pattern)
	}

	if src.UserAgent == "" {
		src.UserAgent = DefaultUserAgent
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	cfg.Output = filepath.Clean(cfg.Output)

	return nil
}

// inferKind picks a backend from a path: archives by suffix, directories otherwise,
// and the remote API when no path is configured at all.
func inferKind(path string) string {
	switch {
	case path == "":
		return KindGithub
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return KindArchive
	default:
		return KindDirectory
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	if cfg.Source == nil {
		return "<unvalidated> -> " + cfg.Output
	}
	switch cfg.Source.Kind {
	case KindGithub:
		ref := cfg.Source.Ref
		if ref == "" {
			ref = "HEAD"
		}
		return fmt.Sprintf("github.com/%s@%s:%s -> %s", cfg.Source.Repo, ref, cfg.Source.Dir, cfg.Output)
	default:
		return fmt.Sprintf("%s:%s -> %s", cfg.Source.Kind, cfg.Source.Path, cfg.Output)
	}
}
