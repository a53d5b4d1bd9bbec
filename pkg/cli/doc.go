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

// Package cli implements the hostfetch command line.
//
// # Usage
//
//	hostfetch [flags]
//
// Collects host facts in parallel under a short deadline and prints them
// next to the distribution logo. Missing facts are left out of the report.
//
//	hostfetch --format json [--output snapshot.json]
//
// Prints the collected snapshot instead of the report.
//
//	hostfetch cache path
//	hostfetch cache clear
//
// Shows or removes the fact cache file.
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/hostfetch/config.yaml (or
// --config), then from the optional --env-file, then from HOSTFETCH_*
// environment variables and flags. Every flag has a matching variable, for
// example --cpu-temp and HOSTFETCH_CPU_TEMP.
//
// # Environment Variables
//
//	LOG_LEVEL   Diagnostics level on stderr (debug, info, warn, error, off); default warn
//
// # Exit Codes
//
//	0  Report or snapshot written, even when facts are missing
//	1  Invalid flags or configuration, unreadable logo directory, write failure
package cli
