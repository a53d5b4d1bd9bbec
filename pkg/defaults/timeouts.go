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

package defaults

import "time"

// Collection timeouts.
const (
	// CollectionDeadline is the global deadline for one collection run.
	// Facts not resolved by then are reported as unavailable.
	CollectionDeadline = 2 * time.Second

	// AdapterTimeout is the default per-adapter timeout. The effective value
	// is the smaller of this and the time left before CollectionDeadline.
	AdapterTimeout = 1500 * time.Millisecond

	// CommandTimeout bounds a single external command invocation inside an adapter.
	CommandTimeout = 1 * time.Second

	// ProfileProbeTimeout bounds platform detection commands such as sw_vers.
	ProfileProbeTimeout = 500 * time.Millisecond
)

// Worker pool sizing.
const (
	// MaxWorkers caps the collector worker pool. The task set is small and fixed,
	// so more workers than this only adds scheduling noise.
	MaxWorkers = 8
)

// Cache lifetimes per class of fact.
const (
	// CacheTTLHardware applies to hardware identity facts (CPU, GPU, host model, bootloader, OS).
	CacheTTLHardware = 24 * time.Hour

	// CacheTTLSoftware applies to facts that change on upgrades (kernel, shell, init).
	CacheTTLSoftware = 6 * time.Hour

	// CacheTTLPackages applies to per-manager package counts.
	CacheTTLPackages = 1 * time.Hour
)

// Rendering defaults.
const (
	// BarWidth is the number of segments in a progress bar.
	BarWidth = 18

	// Gutter is the number of blank cells between logo and facts.
	Gutter = 3

	// MaxDiskParts caps the number of partitions listed in detailed disk mode.
	MaxDiskParts = 8

	// ProgressiveInterval is the minimum delay between progressive redraws.
	ProgressiveInterval = 50 * time.Millisecond
)
