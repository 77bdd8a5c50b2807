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

package icon

import (
	"path"
	"slices"
	"strings"
)

// Extension is the file suffix that marks an icon file.
const Extension = ".svg"

// 🎨 Record describes one icon as reported by a source
type Record struct {
	Name    string  `json:"name"`              // Stem, never carries Extension
	Size    *uint64 `json:"size,omitempty"`    // Only known for remote listings
	Locator string  `json:"locator,omitempty"` // Path, archive entry or URL
}

// 📄 Filename returns the canonical file name for the icon
func (r Record) Filename() string {
	return r.Name + Extension
}

// HasSize reports whether the source knew the icon size.
func (r Record) HasSize() bool {
	return r.Size != nil
}

// SizeBytes returns the size or zero when unknown.
func (r Record) SizeBytes() uint64 {
	if r.Size == nil {
		return 0
	}
	return *r.Size
}

// 🔍 Stem strips Extension (if present) and any directory part from name
func Stem(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(name, Extension)
}

// IsIconFile reports whether name ends with Extension.
func IsIconFile(name string) bool {
	return strings.HasSuffix(name, Extension) && len(name) > len(Extension)
}

// Names returns the names of records in order.
func Names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

// 📊 SortUnique orders records by name and drops repeated names.
// When two records share a name the one with the smaller locator wins.
func SortUnique(records []Record) []Record {
	slices.SortFunc(records, func(a, b Record) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Locator, b.Locator)
	})
	return slices.CompactFunc(records, func(a, b Record) bool {
		return a.Name == b.Name
	})
}

// SizePtr is a helper for building records with a known size.
func SizePtr(n uint64) *uint64 {
	return &n
}
