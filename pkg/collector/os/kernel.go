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
	"github.com/NVIDIA/hostfetch/pkg/platform"
	"github.com/NVIDIA/hostfetch/pkg/version"
)

// KernelCollector reports the kernel release from the profile.
type KernelCollector struct{}

// Collect implements the collector contract for fact.KindKernel.
func (KernelCollector) Collect(_ context.Context, p platform.Profile) fact.Fact {
	release := strings.TrimSpace(p.KernelVersion)
	if release == "" {
		return fact.Unavailable(fact.KindKernel, "kernel release unknown")
	}

	v, err := version.ParseVersion(release)
	if err != nil {
		return fact.Degraded(fact.KindKernel, release, "unrecognized release format")
	}

	f := fact.New(fact.KindKernel, release).WithDetail("version", v.String())
	if p.KernelName != "" {
		f = f.WithDetail("name", p.KernelName)
	}
	return f
}
