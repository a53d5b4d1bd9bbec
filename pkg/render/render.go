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

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/display"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/logo"
	"github.com/NVIDIA/hostfetch/pkg/snapshotter"
)

const (
	// Delimiter separates a label from its value.
	Delimiter = ": "
	// DegradedMarker is appended to degraded rows.
	DegradedMarker = " (degraded)"
)

// Options control layout and color.
type Options struct {
	// Color enables SGR escape sequences.
	Color bool
	// BarWidth is the number of cells inside the bar brackets.
	BarWidth int
	// Gutter is the number of blank cells between logo and facts.
	Gutter int
	// Width truncates rows to this many cells. Zero disables truncation.
	Width int
}

// DefaultOptions returns uncolored options with the default bar width and
// gutter and no truncation.
func DefaultOptions() Options {
	return Options{
		BarWidth: defaults.BarWidth,
		Gutter:   defaults.Gutter,
	}
}

// Render lays out the snapshot facts next to art. The result ends with a
// newline unless it is empty.
func Render(snap *snapshotter.Snapshot, art logo.ArtBlock, theme Theme, opts Options) string {
	var facts []fact.Fact
	if snap != nil {
		facts = snap.Facts
	}
	rows := Layout(facts, art, theme, opts)
	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n"
}

// Layout returns the report rows. There are max(art height, fact rows) rows.
func Layout(facts []fact.Fact, art logo.ArtBlock, theme Theme, opts Options) []string {
	p := painter{theme: theme, color: opts.Color}
	right := FactRows(facts, theme, opts)

	left := art.Lines
	n := max(len(left), len(right))
	rows := make([]string, 0, n)

	indent := 0
	if art.Width > 0 {
		indent = art.Width + max(opts.Gutter, 0)
	}

	for i := range n {
		var row string
		switch {
		case i < len(left) && i < len(right):
			row = display.PadRight(p.paint(RoleAccent, left[i]), indent) + right[i]
		case i < len(left):
			row = strings.TrimRight(left[i], " ")
			row = p.paint(RoleAccent, row)
		default:
			row = strings.Repeat(" ", indent) + right[i]
		}
		rows = append(rows, truncate(row, opts))
	}
	return rows
}

// FactRows returns the right-column rows for facts. Unavailable facts are
// skipped; a fact with parts produces one row per part.
func FactRows(facts []fact.Fact, theme Theme, opts Options) []string {
	p := painter{theme: theme, color: opts.Color}
	width := opts.BarWidth
	if width <= 0 {
		width = defaults.BarWidth
	}

	rows := make([]string, 0, len(facts))
	for _, f := range facts {
		if f.IsUnavailable() {
			continue
		}
		degraded := f.IsDegraded()
		if len(f.Parts) > 0 {
			for _, part := range f.Parts {
				rows = append(rows, p.row(part.Label, part.Value, part.Ratio, degraded, width))
			}
			continue
		}
		label := f.Label
		if label == "" {
			label = f.Kind.Label()
		}
		rows = append(rows, p.row(label, f.Value, f.Ratio, degraded, width))
	}
	return rows
}

func (p painter) row(label, value string, ratio *float64, degraded bool, barWidth int) string {
	var b strings.Builder
	b.WriteString(p.paint(RoleLabel, label))
	b.WriteString(Delimiter)
	b.WriteString(p.paint(RoleValue, value))
	if ratio != nil {
		if value != "" {
			b.WriteByte(' ')
		}
		b.WriteString(p.bar(*ratio, barWidth))
	}
	if degraded {
		b.WriteString(p.paint(RoleDegraded, DegradedMarker))
	}
	return b.String()
}

func truncate(row string, opts Options) string {
	out, cut := display.Truncate(row, opts.Width)
	if cut && opts.Color {
		out += Reset
	}
	return out
}
