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
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/hostfetch/pkg/cache"
	"github.com/NVIDIA/hostfetch/pkg/collector"
	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/header"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// Cache is the subset of cache.Store used by the Orchestrator.
type Cache interface {
	Load(fingerprint string) (cache.Entry, bool)
	Save(fingerprint string, facts []fact.Fact) error
	Eligible(kind fact.Kind) bool
}

// ProgressFunc receives the facts collected so far, in display order.
type ProgressFunc func(partial *Snapshot)

// Orchestrator runs collectors concurrently under a deadline.
type Orchestrator struct {
	version          string
	deadline         time.Duration
	adapterTimeout   time.Duration
	workers          int
	cache            Cache
	fingerprint      string
	progress         ProgressFunc
	progressInterval time.Duration
	clock            clock.PassiveClock
	metrics          *metrics
}

// Option is a functional option for configuring Orchestrator instances.
type Option func(*Orchestrator)

// WithVersion sets the producer version recorded in the snapshot header.
func WithVersion(version string) Option {
	return func(o *Orchestrator) {
		o.version = version
	}
}

// WithDeadline sets the global collection deadline.
func WithDeadline(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.deadline = d
	}
}

// WithAdapterTimeout sets the timeout of a single collector call.
func WithAdapterTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.adapterTimeout = d
	}
}

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		o.workers = n
	}
}

// WithCache enables cache lookups and writes for fingerprint.
func WithCache(c Cache, fingerprint string) Option {
	return func(o *Orchestrator) {
		o.cache = c
		o.fingerprint = fingerprint
	}
}

// WithProgress sets a callback invoked as facts land, at most once per
// interval.
func WithProgress(fn ProgressFunc, interval time.Duration) Option {
	return func(o *Orchestrator) {
		o.progress = fn
		o.progressInterval = interval
	}
}

// WithClock sets the clock used for timestamps and elapsed time.
func WithClock(clk clock.PassiveClock) Option {
	return func(o *Orchestrator) {
		o.clock = clk
	}
}

// NewOrchestrator returns an Orchestrator with the default deadline, adapter
// timeout and a pool of min(NumCPU, MaxWorkers) workers.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		deadline:         defaults.CollectionDeadline,
		adapterTimeout:   defaults.AdapterTimeout,
		workers:          min(runtime.NumCPU(), defaults.MaxWorkers),
		progressInterval: defaults.ProgressiveInterval,
		clock:            clock.RealClock{},
		metrics:          newMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// result is what a worker reports for one slot.
type result struct {
	index int
	fact  fact.Fact
}

// Run collects one fact per binding and returns them in binding order.
// Run never fails: collector problems become unavailable facts.
func (o *Orchestrator) Run(ctx context.Context, p platform.Profile, bindings []collector.Binding) *Snapshot {
	start := o.clock.Now()
	defer func() {
		o.metrics.runDuration.Observe(o.clock.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	snap := NewSnapshot(p)
	snap.Init(header.KindSnapshot, o.version, start)

	facts := make([]fact.Fact, len(bindings))
	done := make([]bool, len(bindings))

	todo := o.fromCache(bindings, facts, done)
	slog.Debug("starting collection",
		slog.Int("collectors", len(todo)),
		slog.Int("cached", len(bindings)-len(todo)),
		slog.Int("workers", o.workers))

	progress := o.progressNotifier(snap, facts, done)
	if len(bindings) > len(todo) {
		progress(false)
	}

	// Buffered for every slot so abandoned workers never block.
	results := make(chan result, len(todo))
	go o.dispatch(ctx, p, bindings, todo, results)

	snap.DeadlineHit = await(ctx, results, len(todo), func(r result) {
		facts[r.index] = r.fact
		done[r.index] = true
		progress(false)
	})

	if snap.DeadlineHit {
		o.metrics.deadlineTotal.Inc()
		for i, b := range bindings {
			if !done[i] {
				slog.Debug("collector missed deadline", slog.String("kind", b.Kind.String()))
				facts[i] = fact.Unavailable(b.Kind, fact.ReasonDeadline)
				done[i] = true
			}
		}
	}

	snap.Facts = facts
	snap.Elapsed = o.clock.Since(start)
	progress(true)

	o.save(facts)

	slog.Debug("collection complete",
		slog.Int("facts", len(facts)),
		slog.Duration("elapsed", snap.Elapsed),
		slog.Bool("deadline_hit", snap.DeadlineHit))

	return snap
}

// await lands pending results until they are all in or ctx is done. Results
// already queued when ctx ends still land. It reports whether any result
// is missing.
func await(ctx context.Context, results <-chan result, pending int, land func(result)) bool {
	for pending > 0 {
		select {
		case r := <-results:
			land(r)
			pending--
		case <-ctx.Done():
			for {
				select {
				case r := <-results:
					land(r)
					pending--
					if pending == 0 {
						return false
					}
				default:
					return true
				}
			}
		}
	}
	return false
}

// fromCache fills slots from the cache and returns the indexes left to
// collect.
func (o *Orchestrator) fromCache(bindings []collector.Binding, facts []fact.Fact, done []bool) []int {
	todo := make([]int, 0, len(bindings))

	var (
		entry cache.Entry
		hit   bool
	)
	if o.cache != nil && o.fingerprint != "" {
		entry, hit = o.cache.Load(o.fingerprint)
	}

	for i, b := range bindings {
		if hit && o.cache.Eligible(b.Kind) {
			if f, ok := entry.Fact(b.Kind); ok {
				facts[i] = f
				done[i] = true
				o.metrics.cacheHitsTotal.WithLabelValues(b.Kind.String()).Inc()
				continue
			}
		}
		todo = append(todo, i)
	}
	return todo
}

// dispatch feeds the pool. It stops handing out work once the deadline has
// passed; g.Go blocks while all workers are busy.
func (o *Orchestrator) dispatch(ctx context.Context, p platform.Profile, bindings []collector.Binding, todo []int, results chan<- result) {
	var g errgroup.Group
	g.SetLimit(o.workers)

	for _, i := range todo {
		if ctx.Err() != nil {
			break
		}
		b := bindings[i]
		g.Go(func() error {
			// the slot may have waited past the deadline for a worker
			if ctx.Err() != nil {
				return nil
			}
			results <- result{index: i, fact: o.invoke(ctx, p, b)}
			return nil
		})
	}
	_ = g.Wait()
}

// invoke calls one collector with its own timeout. The collector runs in a
// separate goroutine; when the timeout fires first that goroutine is
// abandoned and its result dropped.
func (o *Orchestrator) invoke(ctx context.Context, p platform.Profile, b collector.Binding) fact.Fact {
	kind := b.Kind.String()
	o.metrics.invocationsTotal.WithLabelValues(kind).Inc()

	start := o.clock.Now()
	defer func() {
		o.metrics.collectorDuration.WithLabelValues(kind).Observe(o.clock.Since(start).Seconds())
	}()

	// inherits the global deadline when it is earlier
	actx, cancel := context.WithTimeout(ctx, o.adapterTimeout)
	defer cancel()

	out := make(chan fact.Fact, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("collector panicked",
					slog.String("kind", kind),
					slog.String("panic", fmt.Sprint(r)))
				out <- fact.Unavailable(b.Kind, "internal error")
			}
		}()
		out <- b.Collector.Collect(actx, p)
	}()

	var f fact.Fact
	select {
	case f = <-out:
		f.Kind = b.Kind
		f = f.Normalize()
	case <-actx.Done():
		reason := fact.ReasonTimeout
		if ctx.Err() != nil {
			reason = fact.ReasonDeadline
		}
		slog.Debug("abandoning collector", slog.String("kind", kind), slog.String("reason", reason))
		f = fact.Unavailable(b.Kind, reason)
	}

	o.metrics.resultsTotal.WithLabelValues(kind, string(f.Status.State)).Inc()
	if f.IsUnavailable() {
		slog.Debug("fact unavailable", slog.String("kind", kind), slog.String("reason", f.Status.Reason))
	}
	return f
}

// progressNotifier returns a function that reports the partial snapshot.
// Calls are throttled to one per interval unless final is set.
func (o *Orchestrator) progressNotifier(snap *Snapshot, facts []fact.Fact, done []bool) func(final bool) {
	if o.progress == nil {
		return func(bool) {}
	}

	limiter := rate.NewLimiter(rate.Every(o.progressInterval), 1)
	return func(final bool) {
		if !final && !limiter.Allow() {
			return
		}
		partial := *snap
		partial.Facts = make([]fact.Fact, 0, len(facts))
		for i, f := range facts {
			if done[i] {
				partial.Facts = append(partial.Facts, f)
			}
		}
		o.progress(&partial)
	}
}

func (o *Orchestrator) save(facts []fact.Fact) {
	if o.cache == nil || o.fingerprint == "" {
		return
	}
	if err := o.cache.Save(o.fingerprint, facts); err != nil {
		o.metrics.cacheSaveErrors.Inc()
		slog.Warn("failed to save cache", slog.String("error", err.Error()))
	}
}
