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

// Package gpu provides the GPU fact.
//
// Sources are tried in order: the vendor interface (nvidia-smi), then bus
// enumeration (lspci -mm), or system_profiler on macOS, whose XML report is
// decoded with howett.net/plist. When several GPUs are found the first
// discrete one wins, else the first integrated one. Intel devices and
// devices described as integrated or built in count as integrated.
//
// The temperature is an optional detail. For lspci results it is read from
// the DRM hwmon node of the card whose PCI slot matches.
package gpu
