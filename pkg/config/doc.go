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

// Package config holds the immutable runtime configuration of hostfetch.
//
// A Config is built from functional options applied in layers, later layers
// winning:
//
//  1. built-in defaults
//  2. the YAML file ($XDG_CONFIG_HOME/hostfetch/config.yaml or --config)
//  3. an optional env file (KEY=value lines, HOSTFETCH_ prefix)
//  4. HOSTFETCH_* environment variables and command line flags
//
// Every layer speaks the same keys. The YAML file uses them as mapping keys
// and the environment uses EnvName(key):
//
//	color: never
//	gpu: false
//	deadline: 1500ms
//	order: [hostname, os, kernel, cpu, memory]
//	theme:
//	  label: "1;35"
//
// Validate reports the first invalid setting as an INVALID_CONFIG error.
package config
