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

package logo

import "strings"

type icon struct {
	match []string
	glyph string
}

// icons are matched in order against the lowercased OS name.
var icons = []icon{
	{[]string{"macos", "mac os"}, ""},
	{[]string{"ubuntu"}, "♕"},
	{[]string{"debian"}, "♦"},
	{[]string{"fedora"}, "🦋"},
	{[]string{"arch"}, "🌀"},
	{[]string{"pop"}, "🚀"},
	{[]string{"cachy"}, "🌰"},
	{[]string{"pika"}, "🐭"},
	{[]string{"elementary"}, "🍎"},
	{[]string{"manjaro"}, "🌄"},
	{[]string{"kali"}, "🔪"},
	{[]string{"suse"}, "🦎"},
	{[]string{"centos"}, "🩸"},
	{[]string{"rocky"}, "🪨"},
	{[]string{"alpine"}, "🏔️"},
	{[]string{"mint"}, "🌿"},
	{[]string{"freebsd"}, "😈"},
	{[]string{"openbsd"}, "🐡"},
	{[]string{"linux"}, "🐧"},
}

// Icon returns the glyph for an OS name, or "" when none matches.
func Icon(osName string) string {
	s := strings.ToLower(osName)
	for _, ic := range icons {
		for _, m := range ic.match {
			if strings.Contains(s, m) {
				return ic.glyph
			}
		}
	}
	return ""
}
