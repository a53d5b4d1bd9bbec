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

package collector

import (
	"io/fs"
	"os"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/hostfetch/pkg/collector/battery"
	"github.com/NVIDIA/hostfetch/pkg/collector/bootloader"
	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/collector/cpu"
	"github.com/NVIDIA/hostfetch/pkg/collector/desktop"
	"github.com/NVIDIA/hostfetch/pkg/collector/disk"
	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/collector/gpu"
	"github.com/NVIDIA/hostfetch/pkg/collector/host"
	"github.com/NVIDIA/hostfetch/pkg/collector/memory"
	"github.com/NVIDIA/hostfetch/pkg/collector/network"
	oscollector "github.com/NVIDIA/hostfetch/pkg/collector/os"
	"github.com/NVIDIA/hostfetch/pkg/collector/packages"
	"github.com/NVIDIA/hostfetch/pkg/collector/systemd"
	"github.com/NVIDIA/hostfetch/pkg/collector/uptime"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	Create(kind fact.Kind, family platform.Family) Collector
	Resolve(p platform.Profile, kinds []fact.Kind) []Binding
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	CPUTemperature bool
	GPUTemperature bool
	DetailedDisks  bool
	Icons          bool

	rootFS   fs.FS
	procRoot string
	runner   *command.Runner
	getenv   func(string) string
	hostname func() (string, error)
	clock    clock.PassiveClock
	location *time.Location
	counts   packages.CountCache
}

// Option is a functional option for configuring DefaultFactory instances.
type Option func(*DefaultFactory)

// WithCPUTemperature adds the package temperature to the CPU fact.
func WithCPUTemperature(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.CPUTemperature = enabled
	}
}

// WithGPUTemperature adds the GPU temperature to the GPU fact.
func WithGPUTemperature(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.GPUTemperature = enabled
	}
}

// WithDetailedDisks reports every filesystem instead of the root only.
func WithDetailedDisks(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.DetailedDisks = enabled
	}
}

// WithIcons prefixes the OS value with the distribution icon.
func WithIcons(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.Icons = enabled
	}
}

// WithRootFS sets the filesystem file based collectors read from.
func WithRootFS(fsys fs.FS) Option {
	return func(f *DefaultFactory) {
		f.rootFS = fsys
	}
}

// WithProcRoot sets the mount point of the proc filesystem.
func WithProcRoot(root string) Option {
	return func(f *DefaultFactory) {
		f.procRoot = root
	}
}

// WithRunner sets the runner used by command based collectors.
func WithRunner(r *command.Runner) Option {
	return func(f *DefaultFactory) {
		f.runner = r
	}
}

// WithGetenv sets the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(f *DefaultFactory) {
		f.getenv = getenv
	}
}

// WithClock sets the clock used for uptime.
func WithClock(clk clock.PassiveClock) Option {
	return func(f *DefaultFactory) {
		f.clock = clk
	}
}

// WithPackageCounts sets the cache of per-manager package counts.
func WithPackageCounts(c packages.CountCache) Option {
	return func(f *DefaultFactory) {
		f.counts = c
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		rootFS:   os.DirFS("/"),
		runner:   command.NewRunner(),
		getenv:   os.Getenv,
		hostname: os.Hostname,
		clock:    clock.RealClock{},
		location: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type variant func(f *DefaultFactory) Collector

type variants struct {
	linux   variant
	bsd     variant
	macos   variant
	unknown variant
}

// every returns variants using the same collector on all families.
func every(v variant) variants {
	return variants{linux: v, bsd: v, macos: v, unknown: v}
}

// table holds one row per kind and one column per family.
var table = map[fact.Kind]variants{
	fact.KindHostname: every(func(f *DefaultFactory) Collector {
		return oscollector.NewHostnameCollector(f.parser(), f.hostname)
	}),
	fact.KindOS: every(func(f *DefaultFactory) Collector {
		return oscollector.NewReleaseCollector(f.Icons)
	}),
	fact.KindKernel: every(func(*DefaultFactory) Collector {
		return oscollector.KernelCollector{}
	}),
	fact.KindShell: every(func(f *DefaultFactory) Collector {
		return oscollector.NewShellCollector(f.getenv)
	}),
	fact.KindHost: {
		linux: func(*DefaultFactory) Collector { return host.NewDMICollector() },
		bsd:   func(f *DefaultFactory) Collector { return host.NewSysctlCollector(f.runner) },
		macos: func(f *DefaultFactory) Collector { return host.NewSysctlCollector(f.runner) },
	},
	fact.KindUptime: {
		linux: func(f *DefaultFactory) Collector {
			return uptime.NewCollector(uptime.ProcBootTime(f.procRoot), f.clock)
		},
		bsd:     func(f *DefaultFactory) Collector { return uptime.NewCollector(uptime.HostBootTime, f.clock) },
		macos:   func(f *DefaultFactory) Collector { return uptime.NewCollector(uptime.HostBootTime, f.clock) },
		unknown: func(f *DefaultFactory) Collector { return uptime.NewCollector(uptime.HostBootTime, f.clock) },
	},
	fact.KindBootTime: {
		linux: func(f *DefaultFactory) Collector {
			return uptime.NewBootTimeCollector(uptime.ProcBootTime(f.procRoot), f.location)
		},
		bsd:     func(f *DefaultFactory) Collector { return uptime.NewBootTimeCollector(uptime.HostBootTime, f.location) },
		macos:   func(f *DefaultFactory) Collector { return uptime.NewBootTimeCollector(uptime.HostBootTime, f.location) },
		unknown: func(f *DefaultFactory) Collector { return uptime.NewBootTimeCollector(uptime.HostBootTime, f.location) },
	},
	fact.KindPackageCount: {
		linux: func(f *DefaultFactory) Collector { return f.packages() },
		bsd:   func(f *DefaultFactory) Collector { return f.packages() },
		macos: func(f *DefaultFactory) Collector { return f.packages() },
	},
	fact.KindInit: {
		linux: func(f *DefaultFactory) Collector { return systemd.NewCollector(systemd.WithParser(f.parser())) },
		macos: func(*DefaultFactory) Collector { return systemd.LaunchdCollector{} },
	},
	fact.KindDesktopEnv: {
		linux: func(f *DefaultFactory) Collector { return desktop.NewEnvironmentCollector(f.getenv) },
		bsd:   func(f *DefaultFactory) Collector { return desktop.NewEnvironmentCollector(f.getenv) },
		macos: func(f *DefaultFactory) Collector { return desktop.NewEnvironmentCollector(f.getenv) },
	},
	fact.KindWindowManager: {
		linux: func(f *DefaultFactory) Collector { return desktop.NewProcCollector(f.procRoot) },
		bsd:   func(f *DefaultFactory) Collector { return desktop.NewPsCollector(f.runner) },
		macos: func(*DefaultFactory) Collector { return desktop.QuartzCollector{} },
	},
	fact.KindCPU: {
		linux:   func(f *DefaultFactory) Collector { return cpu.NewProcCollector(f.procRoot, f.cpuTemperature()) },
		bsd:     func(f *DefaultFactory) Collector { return cpu.NewSysctlCollector(f.runner, f.cpuTemperature()) },
		macos:   func(f *DefaultFactory) Collector { return cpu.NewSysctlCollector(f.runner, f.cpuTemperature()) },
		unknown: func(f *DefaultFactory) Collector { return cpu.NewGenericCollector(f.cpuTemperature()) },
	},
	fact.KindGPU: {
		linux: func(f *DefaultFactory) Collector { return gpu.NewCollector(f.runner, f.parser(), f.GPUTemperature) },
		bsd:   func(f *DefaultFactory) Collector { return gpu.NewCollector(f.runner, f.parser(), f.GPUTemperature) },
		macos: func(f *DefaultFactory) Collector { return gpu.NewCollector(f.runner, f.parser(), f.GPUTemperature) },
	},
	fact.KindMemory: {
		linux:   func(f *DefaultFactory) Collector { return memory.NewProcCollector(f.procRoot) },
		bsd:     func(*DefaultFactory) Collector { return memory.NewGenericCollector() },
		macos:   func(*DefaultFactory) Collector { return memory.NewGenericCollector() },
		unknown: func(*DefaultFactory) Collector { return memory.NewGenericCollector() },
	},
	fact.KindDisk: every(func(f *DefaultFactory) Collector {
		return disk.NewCollector(disk.WithDetailed(f.DetailedDisks))
	}),
	fact.KindNetwork: every(func(*DefaultFactory) Collector {
		return network.NewCollector()
	}),
	fact.KindBattery: {
		linux: func(f *DefaultFactory) Collector { return battery.NewSysfsCollector(f.parser()) },
		macos: func(f *DefaultFactory) Collector { return battery.NewPmsetCollector(f.runner) },
	},
	fact.KindBootloader: {
		linux: func(f *DefaultFactory) Collector { return bootloader.NewCollector(f.rootFS) },
		bsd:   func(f *DefaultFactory) Collector { return bootloader.NewCollector(f.rootFS) },
	},
}

func (f *DefaultFactory) parser() *file.Parser {
	return file.NewParser(file.WithFS(f.rootFS))
}

func (f *DefaultFactory) packages() Collector {
	if f.counts == nil {
		return packages.NewCollector(f.runner)
	}
	return packages.NewCollector(f.runner, packages.WithCountCache(f.counts))
}

func (f *DefaultFactory) cpuTemperature() cpu.TempReader {
	if !f.CPUTemperature {
		return nil
	}
	return cpu.SensorTemperature
}

// Create returns the collector for kind on family. Unknown kinds and
// missing variants yield an Unsupported collector.
func (f *DefaultFactory) Create(kind fact.Kind, family platform.Family) Collector {
	row, ok := table[kind]
	if !ok {
		return Unsupported(kind)
	}

	var v variant
	switch {
	case family == platform.FamilyLinux:
		v = row.linux
	case family == platform.FamilyMacOS:
		v = row.macos
	case family.IsBSD():
		v = row.bsd
	default:
		v = row.unknown
	}
	if v == nil {
		return Unsupported(kind)
	}
	return v(f)
}

// Resolve returns the bindings for kinds on the profile family, in order.
// Duplicate kinds are bound once.
func (f *DefaultFactory) Resolve(p platform.Profile, kinds []fact.Kind) []Binding {
	seen := make(map[fact.Kind]bool, len(kinds))
	bindings := make([]Binding, 0, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		bindings = append(bindings, Binding{Kind: k, Collector: f.Create(k, p.Family)})
	}
	return bindings
}
