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

// Package defaults provides centralized timeout, sizing and lifetime constants.
//
// # Overview
//
// Values here are shared by the collector orchestrator, the adapters, the
// cache store and the renderer so that related limits stay consistent:
//
//   - Collection timeouts: global deadline, per-adapter and per-command limits
//   - Worker pool sizing
//   - Cache lifetimes per class of fact
//   - Rendering sizes (bar width, gutter)
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/hostfetch/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// AdapterTimeout must stay below CollectionDeadline so that one slow adapter
// is reported as "timeout" rather than taking the whole run to the deadline.
// CommandTimeout must stay below AdapterTimeout so that adapters with a
// fallback source still have time to try it.
package defaults
