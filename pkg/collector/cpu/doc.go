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

// Package cpu provides the CPU fact: model name with core and thread
// counts, plus an optional temperature.
//
// Three variants exist, chosen by OS family:
//
//   - ProcCollector reads /proc/cpuinfo through prometheus/procfs. Cores are
//     the distinct (physical id, core id) pairs; threads are the logical
//     processors. Without topology fields the fact degrades to "cores only".
//   - SysctlCollector queries sysctl on macOS and the BSDs.
//   - GenericCollector uses gopsutil.
//
// The temperature is a detail of the same fact. When it cannot be read the
// fact keeps its status and only the detail reports "unavailable".
package cpu
