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
	"github.com/caarlos0/env/v11"
	"gitlab.com/tozd/go/errors"
)

// 🌱 Env holds the environment overrides
type Env struct {
	Source    string `env:"ICONRC_SOURCE"`
	Dir       string `env:"ICONRC_DIR"`
	Archive   string `env:"ICONRC_ARCHIVE"`
	Repo      string `env:"ICONRC_REPO"`
	Ref       string `env:"ICONRC_REF"`
	UserAgent string `env:"ICONRC_USER_AGENT"`
	Output    string `env:"ICONRC_OUTPUT"`
	Token     string `env:"GITHUB_TOKEN"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Errorf("parse env: %w", err)
	}
	return e, nil
}

// parseEnvFrom reads Env from the given map instead of the process environment.
func parseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, errors.Errorf("parse env: %w", err)
	}
	return e, nil
}

// 🔧 ApplyEnv overlays the process environment on cfg
func ApplyEnv(cfg *Config) error {
	e, err := ParseEnv()
	if err != nil {
		return err
	}
	e.Apply(cfg)
	return nil
}

// Apply overlays the non-empty values of e on cfg. A directory or archive
// path replaces whatever backend the file selected.
func (e Env) Apply(cfg *Config) {
	if cfg.Source == nil {
		cfg.Source = &Source{}
	}
	src := cfg.Source

	switch {
	case e.Dir != "":
		src.Kind = KindDirectory
		src.Path = e.Dir
	case e.Archive != "":
		src.Kind = KindArchive
		src.Path = e.Archive
	}
	if e.Source != "" {
		src.Kind = e.Source
	}
	if e.Repo != "" {
		src.Repo = e.Repo
	}
	if e.Ref != "" {
		src.Ref = e.Ref
	}
	if e.UserAgent != "" {
		src.UserAgent = e.UserAgent
	}
	if e.Token != "" {
		src.Token = e.Token
	}
	if e.Output != "" {
		cfg.Output = e.Output
	}
}
