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

// Package render lays out a snapshot next to a logo as a two-column
// terminal report.
//
// The logo occupies the left column at its own width followed by a fixed
// gutter. Fact rows start on the first logo row, one per fact or per fact
// part, as "Label: value". Facts with a ratio get a bar:
//
//	Memory: 4.2/15.6 GiB [████░░░░░░░░░░░░░░] 27%
//
// Unavailable facts produce no row. Degraded facts end with " (degraded)".
// With color off the output contains no escape sequences at all; with color
// on, stripping the escapes yields exactly the color-off output.
package render
