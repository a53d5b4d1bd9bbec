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

package desktop

import (
	"context"
	"path"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// Aqua is the desktop environment reported on macOS.
const Aqua = "Aqua"

// sessionVars are checked in order; the first non-empty one wins.
var sessionVars = []string{"XDG_CURRENT_DESKTOP", "DESKTOP_SESSION", "GDMSESSION"}

var desktopNames = map[string]string{
	"budgie-desktop": "Budgie",
	"cinnamon":       "Cinnamon",
	"gnome":          "GNOME",
	"kde":            "KDE Plasma",
	"lxde":           "LXDE",
	"lxqt":           "LXQt",
	"mate":           "MATE",
	"plasma":         "KDE Plasma",
	"plasmawayland":  "KDE Plasma",
	"unity":          "Unity",
	"xfce":           "Xfce",
	"xfce4":          "Xfce",
}

// EnvironmentCollector reads the desktop session variables.
type EnvironmentCollector struct {
	getenv func(string) string
}

// NewEnvironmentCollector returns a collector reading variables via getenv.
func NewEnvironmentCollector(getenv func(string) string) *EnvironmentCollector {
	return &EnvironmentCollector{getenv: getenv}
}

// Collect implements the collector contract for fact.KindDesktopEnv.
func (c *EnvironmentCollector) Collect(_ context.Context, p platform.Profile) fact.Fact {
	if p.Family == platform.FamilyMacOS {
		return fact.New(fact.KindDesktopEnv, Aqua)
	}

	for _, key := range sessionVars {
		raw := c.getenv(key)
		if raw == "" {
			continue
		}
		f := fact.New(fact.KindDesktopEnv, DesktopName(raw)).WithDetail("variable", key)
		if session := c.getenv("XDG_SESSION_TYPE"); session != "" {
			f = f.WithDetail("session", session)
		}
		return f
	}
	return fact.Unavailable(fact.KindDesktopEnv, "no desktop session")
}

// DesktopName normalizes a session variable value such as "ubuntu:GNOME" or
// "/usr/share/xsessions/plasma" into a display name.
func DesktopName(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, ":"); i >= 0 && i < len(raw)-1 {
		raw = raw[i+1:]
	}
	raw = path.Base(raw)
	if name, ok := desktopNames[strings.ToLower(raw)]; ok {
		return name
	}
	return raw
}
