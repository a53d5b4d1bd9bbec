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

// Package packages counts installed packages across the package managers
// present on the host.
//
// Every manager found on PATH during platform detection is queried in
// parallel. Counts are summed into the fact value and kept per manager in
// the fact details. A manager that fails is left out of the total and
// marks the fact degraded.
//
// With WithCountCache each manager's count is reused while fresh and only
// the managers missing from the cache are queried. Failed managers are not
// stored, so a partial total is completed on the next run.
package packages
