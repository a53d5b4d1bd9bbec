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

// Package snapshotter runs the fact collectors and merges their results into
// a Snapshot.
//
// # Overview
//
// The Orchestrator runs one collector per enabled fact kind on a bounded
// worker pool under a global deadline. Every collector call gets its own
// timeout, the smaller of the adapter timeout and the time left until the
// deadline. A collector that does not return in time is abandoned: its slot
// becomes unavailable with reason "timeout" and whatever it returns later is
// discarded. When the global deadline fires, every slot still open becomes
// unavailable with reason "deadline" and Run returns immediately.
//
//	o := snapshotter.NewOrchestrator(
//	    snapshotter.WithVersion(version),
//	    snapshotter.WithCache(store, fingerprint),
//	)
//	snap := o.Run(ctx, profile, factory.Resolve(profile, kinds))
//
// # Cache
//
// With a cache configured, eligible kinds are looked up before any collector
// runs; hits skip the collector and are marked with source "cache". After
// the run the live facts are written back. Cache failures are logged and
// never change the snapshot.
//
// # Progress
//
// An optional progress callback receives the partial snapshot as facts land,
// at most once per progress interval.
//
// # Metrics
//
// Each Orchestrator owns a Prometheus registry with per-kind invocation
// counts, outcomes and durations. Nothing is exported; the registry exists
// for diagnostics and tests.
package snapshotter
