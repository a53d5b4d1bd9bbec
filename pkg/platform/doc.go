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

// Package platform resolves the host profile once per run.
//
// A Profile carries the OS family, the distribution identity from
// os-release (or sw_vers and uname on macOS and the BSDs), the kernel
// release, the machine architecture and the set of sources found on the
// host: well-known pseudo file trees and commands on PATH. Adapters read the
// profile and never probe the host for the same information again.
//
// Detection never fails. Every probe that cannot be answered leaves its field
// empty and the family falls back to Unknown:
//
//	p := platform.Detect(ctx)
//	if p.HasCommand("nvidia-smi") {
//	    // query the vendor interface
//	}
//
// Tests pass an fstest.MapFS, a scripted command runner and a fixed uname:
//
//	p := platform.Detect(ctx,
//	    platform.WithGOOS("linux"),
//	    platform.WithFS(fsys),
//	    platform.WithRunner(runner),
//	)
package platform
