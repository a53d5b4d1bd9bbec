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

package os

import (
	"context"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/logo"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ReleaseCollector reports the OS name and architecture from the profile,
// for example "Ubuntu 22.04.4 LTS x86_64".
type ReleaseCollector struct {
	icons bool
}

// NewReleaseCollector returns an OS collector. With icons set the value is
// prefixed by the distro glyph when one is known.
func NewReleaseCollector(icons bool) *ReleaseCollector {
	return &ReleaseCollector{icons: icons}
}

// Collect implements the collector contract for fact.KindOS.
func (c *ReleaseCollector) Collect(_ context.Context, p platform.Profile) fact.Fact {
	name := p.DistroName
	if name == "" {
		name = p.Distro
	}

	var f fact.Fact
	switch {
	case name != "":
		f = fact.New(fact.KindOS, strings.TrimSpace(name+" "+p.Arch))
	case p.KernelName != "":
		f = fact.Degraded(fact.KindOS, strings.TrimSpace(p.KernelName+" "+p.Arch), "distribution unknown")
	default:
		return fact.Unavailable(fact.KindOS, "distribution unknown")
	}

	if p.Distro != "" {
		f = f.WithDetail("id", p.Distro)
	}
	if p.DistroVersion != "" {
		f = f.WithDetail("version", p.DistroVersion)
	}

	if c.icons {
		if glyph := logo.Icon(f.Value); glyph != "" {
			f.Value = glyph + " " + f.Value
		}
	}
	return f
}
