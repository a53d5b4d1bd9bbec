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
	"fmt"
	"math"
	"strings"
)

const (
	filledGlyph = "█"
	emptyGlyph  = "░"
)

// Filled returns the number of filled cells of a bar for ratio r. Partial
// cells are not drawn, so a bar is full only at r == 1.
func Filled(r float64, width int) int {
	if width <= 0 || math.IsNaN(r) {
		return 0
	}
	r = min(max(r, 0), 1)
	return int(math.Floor(r * float64(width)))
}

// Percent returns r as a rounded whole percentage.
func Percent(r float64) int {
	if math.IsNaN(r) {
		return 0
	}
	return int(math.Round(min(max(r, 0), 1) * 100))
}

func (p painter) bar(r float64, width int) string {
	n := Filled(r, width)
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(p.paint(RoleBarFilled, strings.Repeat(filledGlyph, n)))
	b.WriteString(p.paint(RoleBarEmpty, strings.Repeat(emptyGlyph, max(width-n, 0))))
	b.WriteByte(']')
	fmt.Fprintf(&b, " %d%%", Percent(r))
	return b.String()
}

// Bar renders ratio r as an uncolored bar of width cells with a trailing
// percentage, such as "[████░░░░░░░░░░░░░░] 27%".
func Bar(r float64, width int) string {
	return painter{}.bar(r, width)
}
