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

// Package os provides the operating system facts: hostname, OS name,
// kernel release and login shell.
//
// The OS and kernel facts are read from the platform profile resolved at
// startup; hostname and shell read the host directly:
//
//   - Hostname: /proc/sys/kernel/hostname, /etc/hostname, then the
//     hostname system call.
//   - Shell: base name of $SHELL.
//
// A kernel release that does not parse as a version is reported degraded
// with the raw release kept as the value.
package os
