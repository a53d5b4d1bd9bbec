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

package cpu

import (
	"context"
	"strconv"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

var (
	macKeys = []string{"machdep.cpu.brand_string", "hw.physicalcpu", "hw.logicalcpu"}
	bsdKeys = []string{"hw.model", "hw.ncpu"}
)

// SysctlCollector queries sysctl on macOS and the BSDs.
type SysctlCollector struct {
	runner *command.Runner
	temp   TempReader
}

// NewSysctlCollector returns a sysctl based collector.
func NewSysctlCollector(runner *command.Runner, temp TempReader) *SysctlCollector {
	return &SysctlCollector{runner: runner, temp: temp}
}

// Collect implements the collector contract for fact.KindCPU.
func (c *SysctlCollector) Collect(ctx context.Context, p platform.Profile) fact.Fact {
	keys := bsdKeys
	if p.Family == platform.FamilyMacOS {
		keys = macKeys
	}

	lines, err := c.runner.Lines(ctx, "sysctl", append([]string{"-n"}, keys...)...)
	if err != nil {
		return fact.FromError(fact.KindCPU, err)
	}
	if len(lines) < len(keys) {
		return fact.FromError(fact.KindCPU, errors.NewWithContext(errors.ErrCodeSourceParse,
			"unexpected sysctl output", map[string]any{"lines": len(lines)}))
	}

	model := lines[0]
	var f fact.Fact
	if p.Family == platform.FamilyMacOS {
		cores, _ := strconv.Atoi(lines[1])
		threads, _ := strconv.Atoi(lines[2])
		f = build(model, cores, threads, cores > 0)
	} else {
		ncpu, _ := strconv.Atoi(lines[1])
		f = build(model, ncpu, 0, false)
	}
	return withTemperature(ctx, f, c.temp)
}
