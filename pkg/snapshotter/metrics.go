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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry *prometheus.Registry

	runDuration       prometheus.Histogram
	deadlineTotal     prometheus.Counter
	invocationsTotal  *prometheus.CounterVec
	resultsTotal      *prometheus.CounterVec
	collectorDuration *prometheus.HistogramVec
	cacheHitsTotal    *prometheus.CounterVec
	cacheSaveErrors   prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,

		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hostfetch_snapshot_duration_seconds",
				Help:    "Time taken to collect a complete snapshot",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),

		deadlineTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hostfetch_snapshot_deadline_total",
				Help: "Number of runs cut short by the global deadline",
			},
		),

		invocationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostfetch_collector_invocations_total",
				Help: "Number of collector calls",
			},
			[]string{"kind"},
		),

		resultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostfetch_collector_results_total",
				Help: "Collector outcomes by fact state",
			},
			[]string{"kind", "state"}, // ok, degraded or unavailable
		),

		collectorDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostfetch_collector_duration_seconds",
				Help:    "Time taken by individual collectors",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"kind"},
		),

		cacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostfetch_cache_hits_total",
				Help: "Facts served from the cache",
			},
			[]string{"kind"},
		),

		cacheSaveErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hostfetch_cache_save_errors_total",
				Help: "Failed cache writes",
			},
		),
	}
}
