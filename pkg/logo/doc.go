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

// Package logo provides the ASCII-art blocks shown next to the report.
//
// Blocks come from two places: an optional user directory holding
// <name>.txt files and a small catalog embedded in the binary. A user file
// replaces the embedded block of the same name.
//
// Lookup resolves a block for a platform profile by trying, in order, the
// explicit override, the distro ID, each ID_LIKE entry, the closest catalog
// name within an edit distance of two, the OS family and finally "default".
package logo
