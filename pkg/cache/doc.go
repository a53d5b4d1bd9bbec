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

// Package cache persists slow-changing facts between runs.
//
// Facts are stored in a single JSON file keyed by a host fingerprint, an
// xxh3 hash of the hostname, kernel release and boot time. A fingerprint
// mismatch, an expired record or an unreadable file is a miss; the store
// never returns partially trusted data.
//
// Every kind has its own TTL. Volatile kinds such as uptime, memory and
// network are never cached, and neither are degraded facts. Package counts
// are kept per manager through Counts:
//
//	store, err := cache.NewStore()
//	if err != nil {
//	    return err
//	}
//	if entry, ok := store.Load(fp); ok {
//	    if f, ok := entry.Fact(fact.KindCPU); ok {
//	        // use f
//	    }
//	}
//
// Writes go to a uuid-named temporary file in the cache directory that is
// then renamed over the cache file. Concurrent runs may race; the loser's
// records are simply lost.
package cache
