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
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/iconrc/cmd/iconrc/prompt"
)

// scriptedPrompter answers prompts from canned responses
type scriptedPrompter struct {
	texts      []string
	selections []string
	multi      [][]string
	confirms   []bool

	asked      []string
	offered    [][]string
	increments int
	total      int
	stopped    bool
}

func (p *scriptedPrompter) Text(msg string) (string, error) {
	p.asked = append(p.asked, msg)
	if len(p.texts) == 0 {
		return "quit", nil
	}
	next := p.texts[0]
	p.texts = p.texts[1:]
	return next, nil
}

func (p *scriptedPrompter) Select(msg string, options []string) (string, error) {
	p.asked = append(p.asked, msg)
	p.offered = append(p.offered, options)
	next := p.selections[0]
	p.selections = p.selections[1:]
	return next, nil
}

func (p *scriptedPrompter) MultiSelect(msg string, options []string) ([]string, error) {
	p.asked = append(p.asked, msg)
	p.offered = append(p.offered, options)
	next := p.multi[0]
	p.multi = p.multi[1:]
	return next, nil
}

func (p *scriptedPrompter) Confirm(msg string, def bool) (bool, error) {
	p.asked = append(p.asked, msg)
	next := p.confirms[0]
	p.confirms = p.confirms[1:]
	return next, nil
}

func (p *scriptedPrompter) Progress(title string, total int) prompt.Progress {
	p.total = total
	return p
}

func (p *scriptedPrompter) Increment() { p.increments++ }
func (p *scriptedPrompter) Stop()      { p.stopped = true }

const alphaSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">
  <circle cx="12" cy="12" r="10" />
</svg>
`

// iconDir creates a directory source with alpha.svg and beta.svg
func iconDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.svg"), []byte(alphaSVG), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.svg"), []byte("<svg><rect/></svg>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	return dir
}

func run(t *testing.T, p prompt.Prompter, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })
	for _, key := range []string{
		"ICONRC_SOURCE", "ICONRC_DIR", "ICONRC_ARCHIVE", "ICONRC_REPO",
		"ICONRC_REF", "ICONRC_USER_AGENT", "ICONRC_OUTPUT", "GITHUB_TOKEN",
	} {
		t.Setenv(key, "")
	}

	if p == nil {
		p = &scriptedPrompter{}
	}

	var out bytes.Buffer
	cmd := newRootCmd(&out, p)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListJSON(t *testing.T) {
	dir := iconDir(t)

	out, err := run(t, nil, "--dir", dir, "list", "--json")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"alpha", "beta"}, names)
	assert.Contains(t, out, "[\n  \"alpha\",", "output is pretty printed")
}

func TestListPlain(t *testing.T) {
	dir := iconDir(t)

	tests := []struct {
		name  string
		args  []string
		want  []string
		avoid []string
	}{
		{
			name: "all",
			args: []string{"list"},
			want: []string{"Found 2 icons", "  1. alpha", "  2. beta"},
		},
		{
			name:  "search",
			args:  []string{"list", "--search", "AL"},
			want:  []string{"Found 1 icons", "  1. alpha"},
			avoid: []string{"beta"},
		},
		{
			name:  "limit",
			args:  []string{"list", "--limit", "1"},
			want:  []string{"Found 2 icons", "  1. alpha", "... and 1 more"},
			avoid: []string{"2. beta"},
		},
		{
			name: "no_match",
			args: []string{"list", "-s", "zzz"},
			want: []string{"Found 0 icons"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, nil, append([]string{"--dir", dir}, tt.args...)...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "Found "), "output starts with the count")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.avoid {
				assert.NotContains(t, out, a)
			}
		})
	}

	_, err := run(t, nil, "--dir", dir, "list", "--limit", "-1")
	assert.Error(t, err)
}

func TestDownload(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "out")

	out, err := run(t, nil, "--dir", dir, "download", "alpha", "beta.svg", "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ alpha")
	assert.Contains(t, out, "✓ beta.svg")
	assert.Contains(t, out, "2 exported")
	assert.Contains(t, out, "Output directory: "+dest)

	data, err := os.ReadFile(filepath.Join(dest, "alpha.svg"))
	require.NoError(t, err)
	assert.Equal(t, alphaSVG, string(data))
}

func TestDownloadPartialFailure(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "out")

	out, err := run(t, nil, "--dir", dir, "download", "alpha", "missing", "-o", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 icons failed")
	assert.Contains(t, out, "✓ alpha")
	assert.Contains(t, out, "✗ missing")
	assert.Contains(t, out, "icon not found")

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the found icon is written")
	assert.Equal(t, "alpha.svg", entries[0].Name())
}

func TestDownloadAll(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "all")
	p := &scriptedPrompter{}

	out, err := run(t, p, "--dir", dir, "download-all", "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Download complete: 2 of 2 icons")
	assert.Equal(t, 2, p.total)
	assert.Equal(t, 2, p.increments)
	assert.True(t, p.stopped)

	for _, name := range []string{"alpha.svg", "beta.svg"} {
		_, err := os.Stat(filepath.Join(dest, name))
		assert.NoError(t, err, name)
	}
}

func TestOutputFromEnv(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "env-out")

	color.NoColor = true
	t.Setenv("ICONRC_DIR", dir)
	t.Setenv("ICONRC_OUTPUT", dest)

	var out bytes.Buffer
	cmd := newRootCmd(&out, &scriptedPrompter{})
	cmd.SetArgs([]string{"download", "beta"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	_, err := os.Stat(filepath.Join(dest, "beta.svg"))
	assert.NoError(t, err)
}

func TestPreview(t *testing.T) {
	dir := iconDir(t)

	out, err := run(t, nil, "--dir", dir, "preview", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Previewing: alpha.svg")
	assert.Contains(t, out, "SVG Tag:")
	assert.Contains(t, out, `viewBox="0 0 24 24"`)
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "Size: ")

	_, err = run(t, nil, "--dir", dir, "preview", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icon not found")
}

func TestInteractiveSearch(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "picked")
	p := &scriptedPrompter{
		texts:      []string{"", "zzz", "al", "QUIT"},
		selections: []string{"alpha"},
		confirms:   []bool{true},
	}

	out, err := run(t, p, "--dir", dir, "search", "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "No icons found!")
	assert.Contains(t, out, "Found: 1")
	assert.Contains(t, out, "Previewing: alpha.svg")
	assert.Equal(t, [][]string{{"alpha"}}, p.offered)
	assert.Empty(t, p.texts, "loop ends at quit")

	_, err = os.Stat(filepath.Join(dest, "alpha.svg"))
	assert.NoError(t, err)
}

func TestInteractiveSelect(t *testing.T) {
	dir := iconDir(t)
	dest := filepath.Join(t.TempDir(), "chosen")
	p := &scriptedPrompter{multi: [][]string{{"beta"}}}

	out, err := run(t, p, "--dir", dir, "select", "--output", dest)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alpha", "beta"}}, p.offered)
	assert.Contains(t, out, "✓ beta")

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "beta.svg", entries[0].Name())

	p = &scriptedPrompter{multi: [][]string{{}}}
	out, err = run(t, p, "--dir", dir, "select", "--search", "al")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alpha"}}, p.offered)
	assert.Contains(t, out, "No icons selected!")
}

func TestRootFlags(t *testing.T) {
	dir := iconDir(t)

	_, err := run(t, nil, "--dir", dir, "--remote", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	_, err = run(t, nil, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")

	_, err = run(t, nil, "--dir", filepath.Join(dir, "nope"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source unavailable")
}

func TestConfigFile(t *testing.T) {
	dir := iconDir(t)
	cfgPath := filepath.Join(t.TempDir(), "iconrc.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
source {
  kind = "directory"
  path = "`+dir+`"
}
ignore = ["beta"]
`), 0644))

	out, err := run(t, nil, "-c", cfgPath, "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `["alpha"]`, out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, nil, "--config", "/does/not/exist.yaml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iconrc version info")
	assert.Contains(t, out, "Go:")
}
