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

package display

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

const esc = '\x1b'

// RuneWidth returns the number of terminal cells r occupies.
func RuneWidth(r rune) int {
	switch {
	case r == 0, r < 0x20, r == 0x7f:
		return 0
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// escapeLen returns the byte length of the ANSI CSI sequence at the start of
// s, or 0 when s does not start with one.
func escapeLen(s string) int {
	if len(s) < 2 || s[0] != esc || s[1] != '[' {
		return 0
	}
	for i := 2; i < len(s); i++ {
		if c := s[i]; c >= 0x40 && c <= 0x7e {
			return i + 1
		}
	}
	return len(s)
}

// Width returns the display width of s, skipping escape sequences.
func Width(s string) int {
	w := 0
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w += RuneWidth(r)
		i += size
	}
	return w
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// Truncate cuts s to at most cells display cells. Escape sequences are kept
// intact and do not count. The second result reports whether anything was
// cut. A non-positive cells value returns s unchanged.
func Truncate(s string, cells int) (string, bool) {
	if cells <= 0 || Width(s) <= cells {
		return s, false
	}
	var b strings.Builder
	w := 0
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			b.WriteString(s[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := RuneWidth(r)
		if w+rw > cells {
			break
		}
		b.WriteString(s[i : i+size])
		w += rw
		i += size
	}
	return b.String(), true
}

// PadRight appends spaces until s is cells wide.
func PadRight(s string, cells int) string {
	if w := Width(s); w < cells {
		return s + strings.Repeat(" ", cells-w)
	}
	return s
}
