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

package file

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	p := NewParser()
	assert.Equal(t, "\n", p.delimiter)
	assert.Equal(t, 1<<20, p.maxSize)
	assert.True(t, p.skipComments)
	assert.Equal(t, "=", p.kvDelimiter)
	assert.NotNil(t, p.FS())

	p = NewParser(
		WithDelimiter(";"),
		WithMaxSize(10),
		WithSkipComments(false),
		WithKVDelimiter(":"),
		WithVDefault("N/A"),
		WithVTrimChars(`"`),
		WithSkipEmptyValues(true),
	)
	assert.Equal(t, ";", p.delimiter)
	assert.Equal(t, 10, p.maxSize)
	assert.False(t, p.skipComments)
	assert.Equal(t, ":", p.kvDelimiter)
	assert.Equal(t, "N/A", p.vDefault)
	assert.Equal(t, `"`, p.vTrimChars)
	assert.True(t, p.skipEmptyValues)
}

func TestGetLines(t *testing.T) {
	fsys := fstest.MapFS{
		"proc/modules": {Data: []byte("nvidia 1 0\n\n  # comment\nvfio 2 0\n")},
		"semi":         {Data: []byte("a;b;;c")},
		"big":          {Data: []byte(strings.Repeat("x", 64))},
		"binary":       {Data: []byte{0xff, 0xfe}},
	}

	tests := []struct {
		name    string
		path    string
		opts    []Option
		want    []string
		wantErr bool
	}{
		{name: "newline split skips blanks and comments", path: "/proc/modules", want: []string{"nvidia 1 0", "vfio 2 0"}},
		{name: "keep comments", path: "/proc/modules", opts: []Option{WithSkipComments(false)}, want: []string{"nvidia 1 0", "# comment", "vfio 2 0"}},
		{name: "custom delimiter", path: "semi", opts: []Option{WithDelimiter(";")}, want: []string{"a", "b", "c"}},
		{name: "too large", path: "big", opts: []Option{WithMaxSize(10)}, wantErr: true},
		{name: "invalid utf8", path: "binary", wantErr: true},
		{name: "missing", path: "/nope", wantErr: true},
		{name: "empty path", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(append([]Option{WithFS(fsys)}, tt.opts...)...)
			got, err := p.GetLines(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetLines_NotExistIsWrapped(t *testing.T) {
	p := NewParser(WithFS(fstest.MapFS{}))
	_, err := p.GetLines("/etc/os-release")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestGetMap(t *testing.T) {
	osRelease := `NAME="Arch Linux"
PRETTY_NAME="Arch Linux"
ID=arch
BUILD_ID=rolling
# comment
ANSI_COLOR="38;2;23;147;209"
EMPTY=
KEYONLY
`
	fsys := fstest.MapFS{
		"etc/os-release": {Data: []byte(osRelease)},
		"proc/meminfo":   {Data: []byte("MemTotal:       16000000 kB\nMemFree: 100 kB\n")},
	}

	t.Run("os-release with trimming", func(t *testing.T) {
		p := NewParser(WithFS(fsys), WithVTrimChars(`"'`), WithSkipEmptyValues(true))
		got, err := p.GetMap("/etc/os-release")
		require.NoError(t, err)
		assert.Equal(t, "Arch Linux", got["PRETTY_NAME"])
		assert.Equal(t, "arch", got["ID"])
		assert.Equal(t, "38;2;23;147;209", got["ANSI_COLOR"])
		assert.NotContains(t, got, "EMPTY")
		assert.NotContains(t, got, "KEYONLY")
	})

	t.Run("default for key-only lines", func(t *testing.T) {
		p := NewParser(WithFS(fsys), WithVDefault("true"))
		got, err := p.GetMap("/etc/os-release")
		require.NoError(t, err)
		assert.Equal(t, "true", got["KEYONLY"])
		assert.Equal(t, "", got["EMPTY"])
		assert.Equal(t, `"Arch Linux"`, got["NAME"])
	})

	t.Run("colon delimiter", func(t *testing.T) {
		p := NewParser(WithFS(fsys), WithKVDelimiter(":"))
		got, err := p.GetMap("/proc/meminfo")
		require.NoError(t, err)
		assert.Equal(t, "16000000 kB", got["MemTotal"])
		assert.Equal(t, "100 kB", got["MemFree"])
	})

	t.Run("propagates read errors", func(t *testing.T) {
		p := NewParser(WithFS(fsys))
		_, err := p.GetMap("/etc/missing")
		assert.Error(t, err)
	})
}

func TestGetString(t *testing.T) {
	fsys := fstest.MapFS{
		"proc/sys/kernel/hostname": {Data: []byte("workstation\n")},
		"etc/hostname":             {Data: []byte("   \n")},
	}
	p := NewParser(WithFS(fsys))

	got, err := p.GetString("/proc/sys/kernel/hostname")
	require.NoError(t, err)
	assert.Equal(t, "workstation", got)

	_, err = p.GetString("/etc/hostname")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	fsys := fstest.MapFS{
		"sys/class/power_supply/BAT0/capacity": {Data: []byte("80\n")},
	}
	p := NewParser(WithFS(fsys))
	assert.True(t, p.Exists("/sys/class/power_supply"))
	assert.True(t, p.Exists("/sys/class/power_supply/BAT0/capacity"))
	assert.False(t, p.Exists("/sys/class/drm"))
	assert.True(t, p.Exists("/"))
}
