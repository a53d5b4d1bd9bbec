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

	"github.com/prometheus/procfs"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ProcCollector reads /proc/cpuinfo.
type ProcCollector struct {
	procRoot string
	temp     TempReader
}

// NewProcCollector returns a collector reading the proc filesystem mounted
// at procRoot. A nil temp disables the temperature detail.
func NewProcCollector(procRoot string, temp TempReader) *ProcCollector {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	return &ProcCollector{procRoot: procRoot, temp: temp}
}

type coreKey struct {
	physical string
	core     string
}

// Collect implements the collector contract for fact.KindCPU.
func (c *ProcCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	fs, err := procfs.NewFS(c.procRoot)
	if err != nil {
		return fact.FromError(fact.KindCPU, errors.Wrap(errors.ErrCodeSourceUnavailable, "procfs unavailable", err))
	}
	infos, err := fs.CPUInfo()
	if err != nil {
		return fact.FromError(fact.KindCPU, errors.Wrap(errors.ErrCodeSourceParse, "cpuinfo unreadable", err))
	}
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindCPU, err)
	}

	var model string
	topology := len(infos) > 0
	cores := make(map[coreKey]struct{})
	for _, info := range infos {
		if model == "" {
			model = info.ModelName
		}
		if info.CoreID == "" {
			topology = false
			continue
		}
		cores[coreKey{physical: info.PhysicalID, core: info.CoreID}] = struct{}{}
	}

	f := build(model, len(cores), len(infos), topology)
	return withTemperature(ctx, f, c.temp)
}
