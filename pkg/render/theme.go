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
	"maps"
	"slices"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/errors"
)

// Role is a semantic part of the report that can be colored.
type Role string

const (
	RoleAccent    Role = "accent"
	RoleLabel     Role = "label"
	RoleValue     Role = "value"
	RoleBarFilled Role = "bar-filled"
	RoleBarEmpty  Role = "bar-empty"
	RoleDegraded  Role = "degraded"
)

// Roles lists every role.
var Roles = []Role{RoleAccent, RoleLabel, RoleValue, RoleBarFilled, RoleBarEmpty, RoleDegraded}

// Reset ends any active SGR attributes.
const Reset = "\x1b[0m"

// Theme maps roles to SGR parameters such as "1;34".
type Theme map[Role]string

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	RoleAccent:    "1;36",
	RoleLabel:     "1;34",
	RoleValue:     "0",
	RoleBarFilled: "32",
	RoleBarEmpty:  "90",
	RoleDegraded:  "33",
}

// Merge returns a copy of t with the roles set in other replacing its own.
func (t Theme) Merge(other map[string]string) (Theme, error) {
	out := maps.Clone(t)
	if out == nil {
		out = make(Theme, len(other))
	}
	for name, code := range other {
		r := Role(name)
		if !slices.Contains(Roles, r) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "unknown theme role",
				map[string]any{"role": name})
		}
		if !validSGR(code) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "invalid color code",
				map[string]any{"role": name, "code": code})
		}
		out[r] = code
	}
	return out, nil
}

func validSGR(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range code {
		if (c < '0' || c > '9') && c != ';' {
			return false
		}
	}
	return true
}

// painter wraps text in the SGR codes of a theme, or passes it through when
// color is off.
type painter struct {
	theme Theme
	color bool
}

func (p painter) paint(r Role, s string) string {
	if !p.color || s == "" {
		return s
	}
	code, ok := p.theme[r]
	if !ok {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(code) + len(Reset) + 3)
	b.WriteString("\x1b[")
	b.WriteString(code)
	b.WriteByte('m')
	b.WriteString(s)
	b.WriteString(Reset)
	return b.String()
}
