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

package fact

// Kind identifies one piece of host information.
type Kind string

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

const (
	KindHostname      Kind = "hostname"
	KindOS            Kind = "os"
	KindHost          Kind = "host"
	KindKernel        Kind = "kernel"
	KindUptime        Kind = "uptime"
	KindBootTime      Kind = "boot-time"
	KindPackageCount  Kind = "packages"
	KindShell         Kind = "shell"
	KindInit          Kind = "init"
	KindDesktopEnv    Kind = "desktop"
	KindWindowManager Kind = "window-manager"
	KindCPU           Kind = "cpu"
	KindGPU           Kind = "gpu"
	KindMemory        Kind = "memory"
	KindDisk          Kind = "disk"
	KindNetwork       Kind = "network"
	KindBattery       Kind = "battery"
	KindBootloader    Kind = "bootloader"
)

// Kinds is the closed set of supported kinds in default display order.
var Kinds = []Kind{
	KindHostname,
	KindOS,
	KindHost,
	KindKernel,
	KindUptime,
	KindBootTime,
	KindPackageCount,
	KindShell,
	KindInit,
	KindDesktopEnv,
	KindWindowManager,
	KindCPU,
	KindGPU,
	KindMemory,
	KindDisk,
	KindNetwork,
	KindBattery,
	KindBootloader,
}

var labels = map[Kind]string{
	KindHostname:      "Hostname",
	KindOS:            "OS",
	KindHost:          "Host",
	KindKernel:        "Kernel",
	KindUptime:        "Uptime",
	KindBootTime:      "Boot Time",
	KindPackageCount:  "Packages",
	KindShell:         "Shell",
	KindInit:          "Init",
	KindDesktopEnv:    "DE",
	KindWindowManager: "WM",
	KindCPU:           "CPU",
	KindGPU:           "GPU",
	KindMemory:        "Memory",
	KindDisk:          "Disk",
	KindNetwork:       "Network",
	KindBattery:       "Battery",
	KindBootloader:    "Bootloader",
}

// Label returns the default display label for the kind.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// IsValid reports whether k is one of the supported kinds.
func (k Kind) IsValid() bool {
	_, ok := labels[k]
	return ok
}

// ParseKind parses a string into a Kind.
// Returns the Kind and true if parsing succeeds, or empty Kind and false if the string is invalid.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	if k.IsValid() {
		return k, true
	}
	return "", false
}
