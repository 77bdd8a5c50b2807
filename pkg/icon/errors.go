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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Error kinds. Every error returned by a source, the catalog or the
// exporter matches exactly one of these through errors.Is.
var (
	ErrSourceUnavailable = errors.Base("source unavailable")
	ErrParseFailure      = errors.Base("parse failure")
	ErrNotFound          = errors.Base("not found")
	ErrIconNotFound      = errors.Base("icon not found")
	ErrTransportFailure  = errors.Base("transport failure")
	ErrIOFailure         = errors.Base("io failure")
	ErrExportFailure     = errors.Base("export failure")
)

// kinds is ordered from most to least specific for KindOf.
var kinds = []error{
	ErrIconNotFound,
	ErrNotFound,
	ErrParseFailure,
	ErrSourceUnavailable,
	ErrTransportFailure,
	ErrIOFailure,
	ErrExportFailure,
}

// 📦 Error ties a failure to its kind and the icon or location involved
type Error struct {
	Kind error  // One of the Err* kinds above
	Op   string // e.g. "enumerate", "fetch", "export"
	Name string // Icon name, locator or path; may be empty
	Err  error  // Underlying cause; may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Name != "" {
		b.WriteString(" (")
		b.WriteString(e.Name)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// 🏭 NewError builds an *Error
func NewError(kind error, op, name string, err error) error {
	return &Error{Kind: kind, Op: op, Name: name, Err: err}
}

// IconNotFound is the error for a name that no record resolves to.
func IconNotFound(name string) error {
	return &Error{Kind: ErrIconNotFound, Op: "resolve", Name: name}
}

// 🔍 KindOf returns the most specific kind err matches, or nil
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
