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
package preview

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/iconrc/pkg/icon"
)

const activity = `<svg
  xmlns="http://www.w3.org/2000/svg"
  width="24"
  height="24"
  viewBox="0 0 24 24"
  stroke="currentColor"
>
  <path d="M22 12h-2.48a2 2 0 0 0-1.93 1.46l-2.35 8.36a.25.25 0 0 1-.48 0L9.24 2.18a.25.25 0 0 0-.48 0l-2.35 8.36A2 2 0 0 1 4.49 12H2" />
</svg>
`

func TestParse(t *testing.T) {
	p, err := Parse("activity", []byte(activity))
	require.NoError(t, err)

	assert.Equal(t, "activity.svg", p.Name)
	assert.True(t, strings.HasPrefix(p.Tag, "<svg"))
	assert.True(t, strings.HasSuffix(p.Tag, ">"))
	assert.Contains(t, p.Tag, `viewBox="0 0 24 24"`)

	keys := make([]string, 0, len(p.Attrs))
	for _, a := range p.Attrs {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"xmlns", "width", "height", "viewBox", "stroke"}, keys, "attributes keep document order")

	vb, ok := p.Attr("viewBox")
	require.True(t, ok)
	assert.Equal(t, "0 0 24 24", vb)

	_, ok = p.Attr("fill")
	assert.False(t, ok)

	assert.Equal(t, len(activity), p.Size())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("readme.svg", []byte("# not an icon"))
	require.Error(t, err)
	assert.ErrorIs(t, err, icon.ErrParseFailure)
}

func TestRender(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	p, err := Parse("activity.svg", []byte(activity))
	require.NoError(t, err)

	var buf bytes.Buffer
	p.Render(&buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Previewing: activity.svg", lines[0])
	assert.Equal(t, strings.Repeat("=", 50), lines[1])
	assert.Equal(t, "SVG Tag:", lines[2])

	assert.Contains(t, out, "Attributes:\n")
	assert.Contains(t, out, "  viewBox 0 0 24 24\n")
	assert.Contains(t, out, "  width   24\n")
	assert.Contains(t, out, "Content:\n")
	assert.Contains(t, out, "</svg>\n")
	assert.True(t, strings.HasSuffix(out, fmt.Sprintf("Size: %d bytes (%s)\n", len(activity), humanize.Bytes(uint64(len(activity))))), "size footer ends the preview")
}
