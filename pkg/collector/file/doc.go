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

// Package file reads small host files through an fs.FS.
//
// The Parser splits a file into trimmed lines or key/value pairs and is used
// for os-release, /proc and /sys entries. Paths are written as absolute host
// paths and resolved relative to the parser's filesystem, which defaults to
// os.DirFS("/"). Tests inject fstest.MapFS:
//
//	p := file.NewParser(
//	    file.WithFS(fstest.MapFS{"etc/os-release": {Data: []byte("ID=arch\n")}}),
//	    file.WithVTrimChars(`"'`),
//	)
//	kv, err := p.GetMap("/etc/os-release")
//
// Errors wrap the underlying fs error, so errors.Is(err, fs.ErrNotExist)
// works for missing files.
package file
