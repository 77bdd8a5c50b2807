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
package catalog_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/iconrc/pkg/catalog"
	"github.com/walteh/iconrc/pkg/icon"
	"github.com/walteh/iconrc/pkg/source/local"
)

// mockSource is a testify mock of source.Source
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Enumerate(ctx context.Context) ([]icon.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]icon.Record)
	return records, args.Error(1)
}

func (m *mockSource) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	args := m.Called(ctx, locator)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func fixture(t *testing.T, names ...string) *catalog.Catalog {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fs, "/icons/"+n, []byte("<svg>"+n+"</svg>"), 0644))
	}
	return catalog.New(local.NewDirectory(fs, "/icons", ""))
}

func TestList(t *testing.T) {
	ctx := testContext(t)
	c := fixture(t, "beta.svg", "alpha.svg")

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, icon.Names(records))
}

func TestSearch(t *testing.T) {
	ctx := testContext(t)
	c := fixture(t, "alpha.svg", "beta.svg", "Alarm-Clock.svg", "heart.svg")

	all, err := c.List(ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "substring", pattern: "al", want: []string{"Alarm-Clock", "alpha"}},
		{name: "case_insensitive", pattern: "ALP", want: []string{"alpha"}},
		{name: "extension_is_not_part_of_name", pattern: "heart.svg", want: []string{}},
		{name: "bare_extension", pattern: ".svg", want: []string{}},
		{name: "no_match", pattern: "zzz", want: []string{}},
		{name: "empty_is_everything", pattern: "", want: icon.Names(all)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Search(ctx, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, icon.Names(got))

			for _, r := range got {
				assert.Contains(t, strings.ToLower(r.Name), strings.ToLower(tt.pattern))
			}

			// every hit is part of the full listing, in listing order
			idx := 0
			for _, r := range got {
				for idx < len(all) && all[idx].Name != r.Name {
					idx++
				}
				assert.Less(t, idx, len(all), "search result %s missing from list", r.Name)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := testContext(t)
	c := fixture(t, "alpha.svg", "beta.svg")

	for _, name := range []string{"alpha", "alpha.svg"} {
		r, err := c.Resolve(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, "alpha", r.Name)
	}

	for _, name := range []string{"gamma", "", ".svg", "ALPHA"} {
		_, err := c.Resolve(ctx, name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, icon.ErrIconNotFound, name)
	}
}

func TestContent(t *testing.T) {
	ctx := testContext(t)
	c := fixture(t, "alpha.svg")

	data, err := c.Content(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "<svg>alpha.svg</svg>", string(data))

	_, err = c.Content(ctx, "missing")
	assert.ErrorIs(t, err, icon.ErrIconNotFound)
}

func TestIgnore(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	for _, n := range []string{"bell.svg", "bell-off.svg", "mic-off.svg"} {
		require.NoError(t, afero.WriteFile(fs, "/icons/"+n, []byte("<svg/>"), 0644))
	}
	c := catalog.New(local.NewDirectory(fs, "/icons", ""), "*-off")

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bell"}, icon.Names(records))

	_, err = c.Resolve(ctx, "mic-off")
	assert.ErrorIs(t, err, icon.ErrIconNotFound, "ignored icons cannot be resolved")

	bad := catalog.New(local.NewDirectory(fs, "/icons", ""), "[bell")
	_, err = bad.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, icon.ErrParseFailure, "malformed ignore glob")
}

func TestEnumeratesEveryCall(t *testing.T) {
	ctx := testContext(t)
	src := &mockSource{}
	src.On("Enumerate", mock.Anything).Return([]icon.Record{{Name: "a"}}, nil).Once()
	src.On("Enumerate", mock.Anything).Return([]icon.Record{{Name: "a"}, {Name: "b"}}, nil).Once()

	c := catalog.New(src)
	first, err := c.List(ctx)
	require.NoError(t, err)
	second, err := c.List(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2, "listing reflects the current backend state")
	src.AssertExpectations(t)
}

func TestSourceErrorsPropagate(t *testing.T) {
	ctx := testContext(t)
	src := &mockSource{}
	src.On("Enumerate", mock.Anything).Return(nil, icon.NewError(icon.ErrSourceUnavailable, "enumerate", "/nope", nil))

	c := catalog.New(src)

	_, err := c.Search(ctx, "a")
	assert.ErrorIs(t, err, icon.ErrSourceUnavailable)

	_, err = c.Resolve(ctx, "a")
	assert.ErrorIs(t, err, icon.ErrSourceUnavailable)
	assert.NotErrorIs(t, err, icon.ErrIconNotFound)
}
