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
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/walteh/iconrc/pkg/icon"
	"gitlab.com/tozd/go/errors"
)

const ruleWidth = 50

// Attr is one attribute of the root <svg> element.
type Attr struct {
	Key string
	Val string
}

// 🖼️ Preview is a parsed icon ready for display
type Preview struct {
	Name    string // Icon file name
	Tag     string // Raw root tag as written in the source
	Attrs   []Attr // Root attributes in document order
	Content string
}

// 🔍 Parse reads the root <svg> element of data
func Parse(name string, data []byte) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, icon.NewError(icon.ErrParseFailure, "preview", name, err)
	}

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return nil, icon.NewError(icon.ErrParseFailure, "preview", name, errors.New("no <svg> element"))
	}

	p := &Preview{
		Name:    icon.Stem(name) + icon.Extension,
		Tag:     rawTag(string(data)),
		Content: string(data),
	}
	for _, a := range root.Nodes[0].Attr {
		p.Attrs = append(p.Attrs, Attr{Key: a.Key, Val: a.Val})
	}

	return p, nil
}

// rawTag returns the text from "<svg" up to the closing ">" of that tag.
func rawTag(content string) string {
	start := strings.Index(content, "<svg")
	if start < 0 {
		return ""
	}
	end := strings.Index(content[start:], ">")
	if end < 0 {
		return content[start:]
	}
	return content[start : start+end+1]
}

// Attr returns the value of a root attribute.
func (p *Preview) Attr(key string) (string, bool) {
	for _, a := range p.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Size returns the content length in bytes.
func (p *Preview) Size() int {
	return len(p.Content)
}

// 🎨 Render writes the preview: the root tag, its attributes, the content with
// markup lines highlighted, then the size
func (p *Preview) Render(w io.Writer) {
	bold := color.New(color.Bold)
	blue := color.New(color.Bold, color.FgBlue)
	faint := color.New(color.Faint)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w, blue.Sprintf("Previewing: %s", p.Name))
	fmt.Fprintln(w, color.New(color.FgBlue).Sprint(strings.Repeat("=", ruleWidth)))

	if p.Tag != "" {
		fmt.Fprintln(w, bold.Sprint("SVG Tag:"))
		fmt.Fprintln(w, faint.Sprint(p.Tag))
		fmt.Fprintln(w)
	}

	if len(p.Attrs) > 0 {
		width := 0
		for _, a := range p.Attrs {
			width = max(width, len(a.Key))
		}
		fmt.Fprintln(w, bold.Sprint("Attributes:"))
		for _, a := range p.Attrs {
			fmt.Fprintf(w, "  %s %s\n", cyan.Sprintf("%-*s", width, a.Key), a.Val)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, bold.Sprint("Content:"))
	for _, line := range strings.Split(strings.TrimRight(p.Content, "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "<") {
			fmt.Fprintln(w, cyan.Sprint(line))
		} else {
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, faint.Sprintf("Size: %d bytes (%s)", p.Size(), humanize.Bytes(uint64(p.Size()))))
}
