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

// Package serializer writes snapshots in machine-readable formats.
//
// Three formats are supported:
//   - JSON: indented, one document
//   - YAML: two-space indentation
//   - Table: one row per fact, aligned with text/tabwriter
//
// Usage:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//		return err
//	}
//
// Values that implement Tabular control their own table layout. Anything
// else is flattened into dotted FIELD/VALUE pairs.
package serializer
