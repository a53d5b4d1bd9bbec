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

package memory

import (
	"context"
	"fmt"

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ReasonApproximated marks usage computed without an available-memory counter.
const ReasonApproximated = "approximated from free memory"

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// FormatUsage formats used and total bytes as "4.2/15.6 GiB", or MiB for
// totals under one GiB.
func FormatUsage(used, total uint64) string {
	unit, name := float64(gib), "GiB"
	if total < gib {
		unit, name = mib, "MiB"
	}
	return fmt.Sprintf("%.1f/%.1f %s", float64(used)/unit, float64(total)/unit, name)
}

func usage(used, total uint64) fact.Fact {
	if total == 0 {
		return fact.Unavailable(fact.KindMemory, "memory total unknown")
	}
	used = min(used, total)
	f := fact.New(fact.KindMemory, FormatUsage(used, total)).
		WithDetail("used", fmt.Sprint(used)).
		WithDetail("total", fmt.Sprint(total))
	if r, ok := fact.RatioOf(used, total); ok {
		f = f.WithRatio(r)
	}
	return f
}

// ProcCollector reads /proc/meminfo.
type ProcCollector struct {
	procRoot string
}

// NewProcCollector returns a collector reading the proc filesystem mounted
// at procRoot.
func NewProcCollector(procRoot string) *ProcCollector {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	return &ProcCollector{procRoot: procRoot}
}

// Collect implements the collector contract for fact.KindMemory.
func (c *ProcCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindMemory, err)
	}
	fs, err := procfs.NewFS(c.procRoot)
	if err != nil {
		return fact.FromError(fact.KindMemory, errors.Wrap(errors.ErrCodeSourceUnavailable, "procfs unavailable", err))
	}
	mi, err := fs.Meminfo()
	if err != nil {
		return fact.FromError(fact.KindMemory, errors.Wrap(errors.ErrCodeSourceParse, "meminfo unreadable", err))
	}
	return fromMeminfo(mi)
}

func fromMeminfo(mi procfs.Meminfo) fact.Fact {
	if mi.MemTotal == nil {
		return fact.Unavailable(fact.KindMemory, "memory total unknown")
	}
	total := *mi.MemTotal * kib

	if mi.MemAvailable != nil {
		return usage(total-min(*mi.MemAvailable*kib, total), total)
	}

	if mi.MemFree == nil {
		return fact.Unavailable(fact.KindMemory, "memory usage unknown")
	}
	free := *mi.MemFree
	if mi.Buffers != nil {
		free += *mi.Buffers
	}
	if mi.Cached != nil {
		free += *mi.Cached
	}
	return usage(total-min(free*kib, total), total).Degrade(ReasonApproximated)
}

// GenericCollector reads memory usage through gopsutil.
type GenericCollector struct {
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewGenericCollector returns a gopsutil based collector.
func NewGenericCollector() *GenericCollector {
	return &GenericCollector{virtual: mem.VirtualMemoryWithContext}
}

// Collect implements the collector contract for fact.KindMemory.
func (c *GenericCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	vm, err := c.virtual(ctx)
	if err != nil {
		return fact.FromError(fact.KindMemory, errors.Wrap(errors.ErrCodeSourceUnavailable, "memory unknown", err))
	}
	if vm.Available == 0 && vm.Free > 0 {
		return usage(vm.Total-min(vm.Free, vm.Total), vm.Total).Degrade(ReasonApproximated)
	}
	return usage(vm.Total-min(vm.Available, vm.Total), vm.Total)
}
