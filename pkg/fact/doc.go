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

// Package fact defines the data model shared by adapters, the orchestrator,
// the cache store and the renderer.
//
// A Fact is one labeled value with an explicit status:
//
//   - StateOK: the value is complete
//   - StateDegraded: a partial value, rendered with a marker
//   - StateUnavailable: no value, never rendered
//
// An unavailable fact never carries a value, a ratio or parts. Normalize
// enforces this and every constructor respects it.
//
// Facts with sub-rows (disk partitions, package managers) list them in Parts;
// the renderer expands each part into its own row.
package fact
