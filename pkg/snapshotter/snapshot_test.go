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
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostfetch/pkg/cache"
	"github.com/NVIDIA/hostfetch/pkg/collector"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/header"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

type countingCollector struct {
	calls atomic.Int32
	fn    func(ctx context.Context) fact.Fact
}

func (c *countingCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	c.calls.Add(1)
	return c.fn(ctx)
}

func returns(f fact.Fact) *countingCollector {
	return &countingCollector{fn: func(context.Context) fact.Fact { return f }}
}

// hangs ignores its context until the test ends.
func hangs(t *testing.T, kind fact.Kind) *countingCollector {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return &countingCollector{fn: func(context.Context) fact.Fact {
		<-release
		return fact.New(kind, "too late")
	}}
}

type fakeCache struct {
	entry    cache.Entry
	hit      bool
	saved    []fact.Fact
	saveErr  error
	eligible map[fact.Kind]bool
}

func (c *fakeCache) Load(string) (cache.Entry, bool) { return c.entry, c.hit }

func (c *fakeCache) Save(_ string, facts []fact.Fact) error {
	c.saved = facts
	return c.saveErr
}

func (c *fakeCache) Eligible(kind fact.Kind) bool { return c.eligible[kind] }

func TestRun_OrderAndNormalization(t *testing.T) {
	o := NewOrchestrator(WithVersion("v1.2.3"))
	bindings := []collector.Binding{
		{Kind: fact.KindMemory, Collector: returns(fact.New(fact.KindMemory, "4.2/15.6 GiB").WithRatio(0.27))},
		{Kind: fact.KindCPU, Collector: returns(fact.New(fact.KindCPU, "Intel Core i7 (8 cores)"))},
		{Kind: fact.KindBattery, Collector: returns(fact.Fact{Kind: fact.KindBattery, Value: "x", Status: fact.Status{State: fact.StateUnavailable, Reason: "no battery"}})},
		{Kind: fact.KindShell, Collector: returns(fact.Fact{Value: "zsh"})},
	}

	snap := o.Run(context.Background(), platform.Profile{Family: platform.FamilyLinux}, bindings)

	require.Len(t, snap.Facts, 4)
	assert.Equal(t, fact.KindMemory, snap.Facts[0].Kind)
	assert.Equal(t, fact.KindCPU, snap.Facts[1].Kind)
	assert.True(t, snap.Facts[2].IsUnavailable())
	assert.Empty(t, snap.Facts[2].Value, "unavailable facts carry no value")
	assert.Equal(t, fact.KindShell, snap.Facts[3].Kind, "kind is taken from the binding")
	assert.Equal(t, "Shell", snap.Facts[3].Label)
	assert.False(t, snap.DeadlineHit)

	assert.True(t, snap.Matches(header.KindSnapshot))
	assert.Equal(t, "v1.2.3", snap.Metadata["version"])
	assert.Len(t, snap.Visible(), 3)
}

func TestRun_HangingCollectorTimesOut(t *testing.T) {
	o := NewOrchestrator(
		WithDeadline(2*time.Second),
		WithAdapterTimeout(30*time.Millisecond),
	)
	bindings := []collector.Binding{
		{Kind: fact.KindGPU, Collector: hangs(t, fact.KindGPU)},
		{Kind: fact.KindCPU, Collector: returns(fact.New(fact.KindCPU, "cpu"))},
	}

	start := time.Now()
	snap := o.Run(context.Background(), platform.Profile{}, bindings)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second, "a hung collector must not hold the run")
	gpu, ok := snap.Fact(fact.KindGPU)
	require.True(t, ok)
	assert.True(t, gpu.IsUnavailable())
	assert.Equal(t, fact.ReasonTimeout, gpu.Status.Reason)

	cpu, ok := snap.Fact(fact.KindCPU)
	require.True(t, ok)
	assert.True(t, cpu.IsOK())
	assert.False(t, snap.DeadlineHit)
}

func TestRun_GlobalDeadline(t *testing.T) {
	o := NewOrchestrator(
		WithDeadline(80*time.Millisecond),
		WithAdapterTimeout(50*time.Millisecond),
		WithWorkers(1),
	)
	bindings := []collector.Binding{
		{Kind: fact.KindGPU, Collector: hangs(t, fact.KindGPU)},
		{Kind: fact.KindPackageCount, Collector: hangs(t, fact.KindPackageCount)},
		{Kind: fact.KindDisk, Collector: hangs(t, fact.KindDisk)},
	}

	start := time.Now()
	snap := o.Run(context.Background(), platform.Profile{}, bindings)

	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, snap.DeadlineHit)
	require.Len(t, snap.Facts, 3)
	assert.Equal(t, fact.ReasonTimeout, snap.Facts[0].Status.Reason)
	assert.Equal(t, fact.ReasonDeadline, snap.Facts[1].Status.Reason)
	assert.Equal(t, fact.ReasonDeadline, snap.Facts[2].Status.Reason)
	for _, f := range snap.Facts {
		assert.True(t, f.IsUnavailable())
	}
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.deadlineTotal), 0)
}

func TestAwait_QueuedResultsLandAfterDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		queued   int
		pending  int
		wantMiss bool
	}{
		{name: "all queued", queued: 3, pending: 3},
		{name: "some missing", queued: 2, pending: 3, wantMiss: true},
		{name: "none queued", queued: 0, pending: 2, wantMiss: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// select picks at random among ready cases
			for range 50 {
				results := make(chan result, tt.pending)
				for i := range tt.queued {
					results <- result{index: i, fact: fact.New(fact.KindShell, "sh")}
				}

				landed := 0
				missed := await(ctx, results, tt.pending, func(result) { landed++ })
				assert.Equal(t, tt.wantMiss, missed)
				assert.Equal(t, tt.queued, landed)
			}
		})
	}
}

func TestRun_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator()
	snap := o.Run(ctx, platform.Profile{}, []collector.Binding{
		{Kind: fact.KindCPU, Collector: returns(fact.New(fact.KindCPU, "cpu"))},
	})
	require.Len(t, snap.Facts, 1)
	assert.Equal(t, fact.KindCPU, snap.Facts[0].Kind)
}

func TestRun_DisabledKindsNeverRun(t *testing.T) {
	cpu := returns(fact.New(fact.KindCPU, "cpu"))
	gpu := returns(fact.New(fact.KindGPU, "gpu"))
	all := map[fact.Kind]collector.Collector{fact.KindCPU: cpu, fact.KindGPU: gpu}

	enabled := []fact.Kind{fact.KindCPU}
	bindings := make([]collector.Binding, 0, len(enabled))
	for _, k := range enabled {
		bindings = append(bindings, collector.Binding{Kind: k, Collector: all[k]})
	}

	o := NewOrchestrator()
	snap := o.Run(context.Background(), platform.Profile{}, bindings)

	assert.EqualValues(t, 1, cpu.calls.Load())
	assert.EqualValues(t, 0, gpu.calls.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.invocationsTotal.WithLabelValues("cpu")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(o.metrics.invocationsTotal.WithLabelValues("gpu")), 0)
	_, ok := snap.Fact(fact.KindGPU)
	assert.False(t, ok)
}

func TestRun_CacheHitsSkipCollectors(t *testing.T) {
	cpu := returns(fact.New(fact.KindCPU, "live cpu"))
	mem := returns(fact.New(fact.KindMemory, "live memory"))
	fc := &fakeCache{
		hit: true,
		entry: cache.Entry{
			Fingerprint: "fp",
			Records: []cache.Record{
				{Fact: fact.New(fact.KindCPU, "cached cpu")},
				{Fact: fact.New(fact.KindMemory, "stale memory")},
			},
		},
		eligible: map[fact.Kind]bool{fact.KindCPU: true},
	}

	o := NewOrchestrator(WithCache(fc, "fp"))
	snap := o.Run(context.Background(), platform.Profile{}, []collector.Binding{
		{Kind: fact.KindCPU, Collector: cpu},
		{Kind: fact.KindMemory, Collector: mem},
	})

	assert.EqualValues(t, 0, cpu.calls.Load())
	assert.EqualValues(t, 1, mem.calls.Load(), "ineligible kinds always run")

	got, _ := snap.Fact(fact.KindCPU)
	assert.Equal(t, "cached cpu", got.Value)
	assert.Equal(t, fact.SourceCache, got.Source)

	got, _ = snap.Fact(fact.KindMemory)
	assert.Equal(t, "live memory", got.Value)
	assert.Equal(t, fact.SourceLive, got.Source)

	require.Len(t, fc.saved, 2)
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.cacheHitsTotal.WithLabelValues("cpu")), 0)
}

// sequence returns its facts in order, repeating the last one.
func sequence(facts ...fact.Fact) *countingCollector {
	c := &countingCollector{}
	c.fn = func(context.Context) fact.Fact {
		i := min(int(c.calls.Load()), len(facts)) - 1
		return facts[i]
	}
	return c
}

func TestRun_DegradedFactsAreCollectedAgain(t *testing.T) {
	store, err := cache.NewStore(cache.WithPath(filepath.Join(t.TempDir(), "cache.json")))
	require.NoError(t, err)

	initc := sequence(
		fact.Degraded(fact.KindInit, "systemd", "version unavailable"),
		fact.New(fact.KindInit, "systemd 255"),
	)
	pkgs := sequence(
		fact.Degraded(fact.KindPackageCount, "1,234 (dpkg 1,234)", "partial count"),
		fact.New(fact.KindPackageCount, "1,246 (dpkg 1,234, flatpak 12)"),
	)
	kernel := returns(fact.New(fact.KindKernel, "Linux 6.8.0"))
	bindings := []collector.Binding{
		{Kind: fact.KindInit, Collector: initc},
		{Kind: fact.KindPackageCount, Collector: pkgs},
		{Kind: fact.KindKernel, Collector: kernel},
	}
	run := func() *Snapshot {
		return NewOrchestrator(WithCache(store, "fp")).Run(context.Background(), platform.Profile{}, bindings)
	}

	snap := run()
	got, _ := snap.Fact(fact.KindPackageCount)
	require.True(t, got.IsDegraded())

	snap = run()
	assert.EqualValues(t, 2, initc.calls.Load())
	assert.EqualValues(t, 2, pkgs.calls.Load())
	assert.EqualValues(t, 1, kernel.calls.Load())

	got, _ = snap.Fact(fact.KindInit)
	assert.Equal(t, "systemd 255", got.Value)
	assert.Equal(t, fact.SourceLive, got.Source)
	got, _ = snap.Fact(fact.KindPackageCount)
	assert.True(t, got.IsOK())
	assert.Equal(t, "1,246 (dpkg 1,234, flatpak 12)", got.Value)

	snap = run()
	assert.EqualValues(t, 2, initc.calls.Load(), "a healthy init fact is cached")
	got, _ = snap.Fact(fact.KindInit)
	assert.Equal(t, fact.SourceCache, got.Source)
}

func TestRun_CacheSaveFailureIsIgnored(t *testing.T) {
	fc := &fakeCache{saveErr: errors.New("read-only filesystem")}
	o := NewOrchestrator(WithCache(fc, "fp"))

	snap := o.Run(context.Background(), platform.Profile{}, []collector.Binding{
		{Kind: fact.KindCPU, Collector: returns(fact.New(fact.KindCPU, "cpu"))},
	})

	require.Len(t, snap.Facts, 1)
	assert.True(t, snap.Facts[0].IsOK())
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.cacheSaveErrors), 0)
}

func TestRun_PanickingCollector(t *testing.T) {
	boom := &countingCollector{fn: func(context.Context) fact.Fact { panic("boom") }}
	o := NewOrchestrator()

	snap := o.Run(context.Background(), platform.Profile{}, []collector.Binding{
		{Kind: fact.KindWindowManager, Collector: boom},
	})

	require.Len(t, snap.Facts, 1)
	assert.True(t, snap.Facts[0].IsUnavailable())
	assert.Equal(t, "internal error", snap.Facts[0].Status.Reason)
}

func TestRun_Progress(t *testing.T) {
	var calls []int
	o := NewOrchestrator(WithProgress(func(partial *Snapshot) {
		calls = append(calls, len(partial.Facts))
	}, time.Hour))

	o.Run(context.Background(), platform.Profile{}, []collector.Binding{
		{Kind: fact.KindCPU, Collector: returns(fact.New(fact.KindCPU, "cpu"))},
		{Kind: fact.KindMemory, Collector: returns(fact.New(fact.KindMemory, "mem"))},
		{Kind: fact.KindShell, Collector: returns(fact.New(fact.KindShell, "sh"))},
	})

	require.Len(t, calls, 2, "first landing plus the final call; the rest is throttled")
	assert.Equal(t, 1, calls[0])
	assert.Equal(t, 3, calls[1])
}

func TestNewOrchestrator_Workers(t *testing.T) {
	o := NewOrchestrator(WithWorkers(0))
	assert.Equal(t, 1, o.workers)

	o = NewOrchestrator()
	assert.GreaterOrEqual(t, o.workers, 1)
	assert.LessOrEqual(t, o.workers, 8)
}
