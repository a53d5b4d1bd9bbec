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

// Package collector defines the fact collector contract and the table that
// picks a collector for every fact kind on the detected platform.
//
// # Overview
//
// A Collector produces exactly one fact.Fact for its kind. Collectors never
// return errors: every failure is folded into the fact status, so a broken
// source shows up as an unavailable or degraded row instead of aborting the
// report.
//
//	type Collector interface {
//	    Collect(ctx context.Context, p platform.Profile) fact.Fact
//	}
//
// # Variant Table
//
// Each kind has one implementation per platform family. The DefaultFactory
// resolves the table once for the detected profile and returns the bindings
// for the enabled kinds, in display order:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithCPUTemperature(true),
//	    collector.WithDetailedDisks(true),
//	)
//	bindings := factory.Resolve(profile, []fact.Kind{fact.KindCPU, fact.KindMemory})
//
// Kinds without an implementation for the family resolve to a collector
// that always reports "unsupported platform".
//
// # Subpackages
//
// Collectors are organized by source:
//   - collector/file - pseudo file parser shared by file based collectors
//   - collector/command - external command runner with abandon on timeout
//   - collector/os - hostname, release, kernel and shell
//   - collector/cpu, collector/memory, collector/gpu, collector/disk
//   - collector/network, collector/battery, collector/bootloader
//   - collector/uptime - uptime and boot time
//   - collector/desktop - desktop environment and window manager
//   - collector/packages - installed package counts
//   - collector/host - hardware model
//   - collector/systemd - init system
package collector
