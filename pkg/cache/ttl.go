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

package cache

import (
	"time"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/fact"
)

// DefaultTTLs lists the cache-eligible kinds. Kinds not listed are never
// cached. Package counts are cached per manager, see Store.SaveCounts.
var DefaultTTLs = map[fact.Kind]time.Duration{
	fact.KindHost:       defaults.CacheTTLHardware,
	fact.KindCPU:        defaults.CacheTTLHardware,
	fact.KindGPU:        defaults.CacheTTLHardware,
	fact.KindBootloader: defaults.CacheTTLHardware,
	fact.KindOS:         defaults.CacheTTLHardware,
	fact.KindKernel:     defaults.CacheTTLSoftware,
	fact.KindInit:       defaults.CacheTTLSoftware,
	fact.KindShell:      defaults.CacheTTLSoftware,
}

// Eligible reports whether kind may be cached with the default TTLs.
func Eligible(kind fact.Kind) bool {
	_, ok := DefaultTTLs[kind]
	return ok
}
