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

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostfetch/pkg/display"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/logo"
	"github.com/NVIDIA/hostfetch/pkg/platform"
	"github.com/NVIDIA/hostfetch/pkg/snapshotter"
)

var fiveLines = logo.NewArtBlock("test", "  /\\\n /  \\\n/____\\\n |  |\n |__|\n")

func exampleSnapshot() *snapshotter.Snapshot {
	snap := snapshotter.NewSnapshot(platform.Profile{Family: platform.FamilyLinux})
	snap.Facts = []fact.Fact{
		fact.New(fact.KindCPU, "Intel Core i7 (8 cores)"),
		fact.New(fact.KindMemory, "4.2/15.6 GiB").WithRatio(0.27),
		fact.Unavailable(fact.KindBattery, "no battery"),
	}
	return snap
}

func TestRender_EndToEnd(t *testing.T) {
	out := Render(exampleSnapshot(), fiveLines, DefaultTheme, DefaultOptions())

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 5)

	assert.Equal(t, "  /\\     CPU: Intel Core i7 (8 cores)", rows[0])
	assert.Equal(t, " /  \\    Memory: 4.2/15.6 GiB [████░░░░░░░░░░░░░░] 27%", rows[1])
	assert.Equal(t, "/____\\", rows[2])
	assert.Equal(t, " |  |", rows[3])
	assert.Equal(t, " |__|", rows[4])
	assert.NotContains(t, out, "Battery")
	assert.NotContains(t, out, "\x1b")
}

func TestLayout_RowCount(t *testing.T) {
	art := logo.NewArtBlock("two", "ab\ncd")
	facts := []fact.Fact{
		fact.New(fact.KindHostname, "box"),
		fact.New(fact.KindKernel, "6.8.0"),
		fact.New(fact.KindShell, "zsh"),
		fact.New(fact.KindUptime, "2h 3m"),
	}

	rows := Layout(facts, art, DefaultTheme, DefaultOptions())
	require.Len(t, rows, 4)
	assert.Equal(t, "ab   Hostname: box", rows[0])
	assert.Equal(t, "     Shell: zsh", rows[2])
	assert.Equal(t, "     Uptime: 2h 3m", rows[3])
}

func TestLayout_NoArt(t *testing.T) {
	rows := Layout([]fact.Fact{fact.New(fact.KindShell, "fish")}, logo.ArtBlock{}, DefaultTheme, DefaultOptions())
	assert.Equal(t, []string{"Shell: fish"}, rows)
}

func TestLayout_WideRunesInArt(t *testing.T) {
	art := logo.NewArtBlock("wide", "日本\nab")
	rows := Layout([]fact.Fact{
		fact.New(fact.KindShell, "sh"),
		fact.New(fact.KindKernel, "6.1"),
	}, art, DefaultTheme, DefaultOptions())

	assert.Equal(t, "日本   Shell: sh", rows[0])
	assert.Equal(t, "ab     Kernel: 6.1", rows[1])
}

func TestFactRows(t *testing.T) {
	facts := []fact.Fact{
		fact.Degraded(fact.KindCPU, "Apple M2", "cores only"),
		fact.New(fact.KindDisk, "25 GiB / 100 GiB").WithParts(
			fact.Part{Label: "Disk (/)", Value: "25 GiB / 100 GiB", Ratio: fact.PartRatio(0.25)},
			fact.Part{Label: "Disk (/data)", Value: "1 TiB / 2 TiB", Ratio: fact.PartRatio(0.5)},
		),
		fact.Unavailable(fact.KindGPU, "no display controller"),
		fact.New(fact.KindBattery, "").WithRatio(1),
	}

	rows := FactRows(facts, DefaultTheme, DefaultOptions())
	require.Len(t, rows, 4)
	assert.Equal(t, "CPU: Apple M2 (degraded)", rows[0])
	assert.Equal(t, "Disk (/): 25 GiB / 100 GiB [████░░░░░░░░░░░░░░] 25%", rows[1])
	assert.Equal(t, "Disk (/data): 1 TiB / 2 TiB [█████████░░░░░░░░░] 50%", rows[2])
	assert.Equal(t, "Battery: [██████████████████] 100%", rows[3])
}

func TestRender_Color(t *testing.T) {
	snap := exampleSnapshot()
	snap.Facts = append(snap.Facts, fact.Degraded(fact.KindKernel, "weird", "unrecognized release format"))

	plain := Render(snap, fiveLines, DefaultTheme, DefaultOptions())

	opts := DefaultOptions()
	opts.Color = true
	colored := Render(snap, fiveLines, DefaultTheme, opts)

	assert.Contains(t, colored, "\x1b[")
	assert.NotEqual(t, plain, colored)
	assert.Equal(t, plain, display.Strip(colored), "stripping escapes yields the plain report")
	assert.Equal(t, colored, Render(snap, fiveLines, DefaultTheme, opts), "rendering is deterministic")

	custom, err := DefaultTheme.Merge(map[string]string{"label": "35"})
	require.NoError(t, err)
	assert.Equal(t, plain, Render(snap, fiveLines, custom, DefaultOptions()), "theme has no effect with color off")
}

func TestRender_Truncation(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 20

	for _, row := range Layout(exampleSnapshot().Facts, fiveLines, DefaultTheme, opts) {
		assert.LessOrEqual(t, display.Width(row), 20, row)
	}

	opts.Color = true
	rows := Layout(exampleSnapshot().Facts, fiveLines, DefaultTheme, opts)
	assert.True(t, strings.HasSuffix(rows[1], Reset))
	assert.LessOrEqual(t, display.Width(rows[1]), 20)
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil, logo.ArtBlock{}, DefaultTheme, DefaultOptions()))
}

func TestBar(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		width int
		want  string
	}{
		{name: "empty", ratio: 0, width: 4, want: "[░░░░] 0%"},
		{name: "full", ratio: 1, width: 4, want: "[████] 100%"},
		{name: "example", ratio: 0.27, width: 18, want: "[████░░░░░░░░░░░░░░] 27%"},
		{name: "almost full", ratio: 0.999, width: 10, want: "[█████████░] 100%"},
		{name: "clamped", ratio: 1.7, width: 2, want: "[██] 100%"},
		{name: "negative", ratio: -1, width: 2, want: "[░░] 0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.ratio, tt.width))
		})
	}
}

func TestThemeMerge(t *testing.T) {
	_, err := DefaultTheme.Merge(map[string]string{"sparkles": "1"})
	assert.Error(t, err)

	_, err = DefaultTheme.Merge(map[string]string{"label": "red"})
	assert.Error(t, err)

	th, err := DefaultTheme.Merge(map[string]string{"bar-filled": "1;31"})
	require.NoError(t, err)
	assert.Equal(t, "1;31", th[RoleBarFilled])
	assert.Equal(t, "32", DefaultTheme[RoleBarFilled], "merge does not modify the receiver")
}
