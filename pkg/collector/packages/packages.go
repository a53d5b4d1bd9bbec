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

package packages

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ReasonPartial marks a total that is missing at least one manager.
const ReasonPartial = "partial count"

// Manager describes how to list the packages of one package manager.
type Manager struct {
	// Name is shown next to the count.
	Name    string
	Command string
	Args    []string
	// Skip is the number of header lines in the output.
	Skip int
}

// Managers in display order.
var Managers = []Manager{
	{Name: "dpkg", Command: "dpkg-query", Args: []string{"-f", "${binary:Package}\\n", "-W"}},
	{Name: "rpm", Command: "rpm", Args: []string{"-qa"}},
	{Name: "pacman", Command: "pacman", Args: []string{"-Qq"}},
	{Name: "apk", Command: "apk", Args: []string{"info"}},
	{Name: "xbps", Command: "xbps-query", Args: []string{"-l"}},
	{Name: "pkg", Command: "pkg", Args: []string{"info", "-q"}},
	{Name: "pkg_info", Command: "pkg_info", Args: []string{"-q"}},
	{Name: "nix", Command: "nix-env", Args: []string{"-q"}},
	{Name: "brew", Command: "brew", Args: []string{"list", "--formula", "-1"}},
	{Name: "flatpak", Command: "flatpak", Args: []string{"list", "--columns=application"}},
	{Name: "snap", Command: "snap", Args: []string{"list"}, Skip: 1},
}

// CountCache keeps per-manager counts between runs.
type CountCache interface {
	LoadCounts() map[string]int
	SaveCounts(counts map[string]int) error
}

// Collector queries the package managers.
type Collector struct {
	runner   *command.Runner
	managers []Manager
	cache    CountCache
}

// Option configures a Collector.
type Option func(*Collector)

// WithCountCache reuses fresh counts from cache and stores the counts it
// queries. Only managers missing from the cache are queried.
func WithCountCache(cache CountCache) Option {
	return func(c *Collector) {
		c.cache = cache
	}
}

// NewCollector returns a collector running managers through runner.
func NewCollector(runner *command.Runner, opts ...Option) *Collector {
	c := &Collector{runner: runner, managers: Managers}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type count struct {
	n      int
	ok     bool
	cached bool
	err    error
}

// Collect implements the collector contract for fact.KindPackageCount.
func (c *Collector) Collect(ctx context.Context, p platform.Profile) fact.Fact {
	present := make([]Manager, 0, len(c.managers))
	for _, m := range c.managers {
		if p.HasCommand(m.Command) {
			present = append(present, m)
		}
	}
	if len(present) == 0 {
		return fact.Unavailable(fact.KindPackageCount, "no package manager")
	}

	cached := map[string]int{}
	if c.cache != nil {
		cached = c.cache.LoadCounts()
	}

	// each goroutine owns one slot
	counts := make([]count, len(present))
	var g errgroup.Group
	for i, m := range present {
		if n, ok := cached[m.Name]; ok {
			counts[i] = count{n: n, ok: true, cached: true}
			continue
		}
		g.Go(func() error {
			n, err := c.count(ctx, m)
			counts[i] = count{n: n, ok: err == nil, err: err}
			return nil
		})
	}
	_ = g.Wait()

	c.save(present, counts)

	var (
		total   int
		failed  bool
		live    bool
		summary []string
		f       = fact.New(fact.KindPackageCount, "")
	)
	for i, m := range present {
		cnt := counts[i]
		if !cnt.ok {
			failed = true
			slog.Debug("package count failed",
				slog.String("manager", m.Name),
				slog.String("error", cnt.err.Error()))
			continue
		}
		if !cnt.cached {
			live = true
		}
		if cnt.n == 0 {
			continue
		}
		total += cnt.n
		summary = append(summary, fmt.Sprintf("%s %s", m.Name, humanize.Comma(int64(cnt.n))))
		f = f.WithDetail(m.Name, strconv.Itoa(cnt.n))
	}

	if len(summary) == 0 {
		if failed {
			return fact.FromError(fact.KindPackageCount, firstError(counts))
		}
		return fact.Unavailable(fact.KindPackageCount, "no packages")
	}

	f.Value = fmt.Sprintf("%s (%s)", humanize.Comma(int64(total)), strings.Join(summary, ", "))
	f = f.WithDetail("total", strconv.Itoa(total))
	if !live && !failed {
		f = f.WithSource(fact.SourceCache)
	}
	if failed {
		f = f.Degrade(ReasonPartial)
	}
	return f
}

// save stores the counts queried in this run. Failed managers are left out
// so the next run asks them again.
func (c *Collector) save(present []Manager, counts []count) {
	if c.cache == nil {
		return
	}
	fresh := make(map[string]int)
	for i, m := range present {
		if counts[i].ok && !counts[i].cached {
			fresh[m.Name] = counts[i].n
		}
	}
	if len(fresh) == 0 {
		return
	}
	if err := c.cache.SaveCounts(fresh); err != nil {
		slog.Debug("failed to save package counts", slog.String("error", err.Error()))
	}
}

func (c *Collector) count(ctx context.Context, m Manager) (int, error) {
	lines, err := c.runner.Lines(ctx, m.Command, m.Args...)
	if err != nil {
		return 0, err
	}
	return max(len(lines)-m.Skip, 0), nil
}

func firstError(counts []count) error {
	for _, c := range counts {
		if c.err != nil {
			return c.err
		}
	}
	return nil
}
