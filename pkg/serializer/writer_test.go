// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string            `json:"name" yaml:"name"`
	Count int               `json:"count" yaml:"count"`
	Tags  map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Items []string          `json:"items,omitempty" yaml:"items,omitempty"`
}

type grid struct{}

func (grid) TableHeader() []string { return []string{"KIND", "VALUE"} }
func (grid) TableRows() [][]string {
	return [][]string{{"cpu", "Ryzen"}, {"memory", "8 GiB"}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: " table ", want: FormatTable},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), sample{Name: "host", Count: 2}))
	assert.JSONEq(t, `{"name":"host","count":2}`, buf.String())
	assert.Contains(t, buf.String(), "\n  \"name\"")
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), sample{Name: "host", Items: []string{"a"}}))
	assert.Equal(t, "name: host\ncount: 0\nitems:\n  - a\n", buf.String())
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	require.NoError(t, w.Serialize(context.Background(), sample{Name: "x"}))
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func TestWriter_TableTabular(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), grid{}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "KIND    VALUE", lines[0])
	assert.Equal(t, "----    -----", lines[1])
	assert.Equal(t, "cpu     Ryzen", lines[2])
	assert.Equal(t, "memory  8 GiB", lines[3])
}

func TestWriter_TableFlattened(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	v := sample{Name: "host", Count: 1, Tags: map[string]string{"k": "v"}, Items: []string{"a"}}
	require.NoError(t, w.Serialize(context.Background(), v))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Tags.k")
	assert.Contains(t, out, "Items.[0]")
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, sample{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		w, err := NewFileWriterOrStdout(FormatJSON, "")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w.output)
		assert.NoError(t, w.Close())
	})

	t.Run("dash is stdout", func(t *testing.T) {
		w, err := NewFileWriterOrStdout(FormatJSON, "-")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w.output)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snap.yaml")
		w, err := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, err)
		require.NoError(t, w.Serialize(context.Background(), sample{Name: "n"}))
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: n")
	})

	t.Run("unwritable", func(t *testing.T) {
		_, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "x.json"))
		assert.Error(t, err)
	})
}
