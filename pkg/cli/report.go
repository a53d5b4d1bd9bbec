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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/NVIDIA/hostfetch/pkg/cache"
	"github.com/NVIDIA/hostfetch/pkg/collector"
	"github.com/NVIDIA/hostfetch/pkg/collector/packages"
	"github.com/NVIDIA/hostfetch/pkg/config"
	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/logo"
	"github.com/NVIDIA/hostfetch/pkg/platform"
	"github.com/NVIDIA/hostfetch/pkg/render"
	"github.com/NVIDIA/hostfetch/pkg/serializer"
	"github.com/NVIDIA/hostfetch/pkg/snapshotter"
)

// reporter holds everything a report run needs from its environment.
type reporter struct {
	out        io.Writer
	isTerminal bool
	termWidth  func() int
	detect     func(ctx context.Context) platform.Profile
	factory    func(cfg *config.Config, counts packages.CountCache) collector.Factory
	cache      func(cfg *config.Config, p platform.Profile) (*cache.Store, string, bool)
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	r := newReporter(ctx, cmd.Root().Writer)
	if format != "" {
		return r.export(ctx, cfg, format, cmd.String(flagOutput))
	}
	return r.report(ctx, cfg)
}

func newReporter(ctx context.Context, out io.Writer) *reporter {
	if out == nil {
		out = os.Stdout
	}
	r := &reporter{
		out:       out,
		termWidth: func() int { return 0 },
		detect: func(ctx context.Context) platform.Profile {
			return platform.Detect(ctx)
		},
		factory: newFactory,
		cache:   openCache(ctx),
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r.isTerminal = true
		r.termWidth = func() int {
			w, _, err := term.GetSize(int(f.Fd()))
			if err != nil {
				return 0
			}
			return w
		}
	}
	return r
}

func newFactory(cfg *config.Config, counts packages.CountCache) collector.Factory {
	opts := []collector.Option{
		collector.WithCPUTemperature(cfg.ShowCPUTemp()),
		collector.WithGPUTemperature(cfg.ShowGPUTemp()),
		collector.WithDetailedDisks(cfg.ShowDisksDetailed()),
		collector.WithIcons(cfg.ShowIcons()),
	}
	if counts != nil {
		opts = append(opts, collector.WithPackageCounts(counts))
	}
	return collector.NewDefaultFactory(opts...)
}

// openCache returns the cache opener.
func openCache(ctx context.Context) func(cfg *config.Config, p platform.Profile) (*cache.Store, string, bool) {
	return func(cfg *config.Config, p platform.Profile) (*cache.Store, string, bool) {
		if !cfg.CacheEnabled() {
			return nil, "", false
		}
		store, err := newStore(cfg)
		if err != nil {
			slog.Warn("cache disabled", slog.String("error", err.Error()))
			return nil, "", false
		}
		fp, err := snapshotter.HostFingerprint(ctx, p)
		if err != nil {
			slog.Warn("cache disabled", slog.String("error", err.Error()))
			return nil, "", false
		}
		return store, fp, true
	}
}

// newStore opens the cache for cfg. Kinds whose value depends on display
// settings are kept out: CPU and GPU while temperatures are shown and OS
// while the icon is shown.
func newStore(cfg *config.Config, opts ...cache.Option) (*cache.Store, error) {
	opts = append(opts, cache.WithVersion(version))
	if cfg.CachePath() != "" {
		opts = append(opts, cache.WithPath(cfg.CachePath()))
	}
	if cfg.ShowCPUTemp() {
		opts = append(opts, cache.WithoutKinds(fact.KindCPU))
	}
	if cfg.ShowGPUTemp() {
		opts = append(opts, cache.WithoutKinds(fact.KindGPU))
	}
	if cfg.ShowIcons() {
		opts = append(opts, cache.WithoutKinds(fact.KindOS))
	}
	return cache.NewStore(opts...)
}

// collect runs the orchestrator for the enabled kinds. progress may be nil.
func (r *reporter) collect(ctx context.Context, cfg *config.Config, p platform.Profile, progress snapshotter.ProgressFunc) *snapshotter.Snapshot {
	opts := []snapshotter.Option{
		snapshotter.WithVersion(version),
		snapshotter.WithDeadline(cfg.Deadline()),
		snapshotter.WithAdapterTimeout(cfg.AdapterTimeout()),
	}

	var counts packages.CountCache
	if store, fp, ok := r.cache(cfg, p); ok {
		opts = append(opts, snapshotter.WithCache(store, fp))
		counts = store.Counts(fp)
	}
	if progress != nil {
		opts = append(opts, snapshotter.WithProgress(progress, defaults.ProgressiveInterval))
	}

	bindings := r.factory(cfg, counts).Resolve(p, cfg.EnabledKinds())
	snap := snapshotter.NewOrchestrator(opts...).Run(ctx, p, bindings)
	slog.Debug("collection finished",
		slog.Int("facts", len(snap.Facts)),
		slog.Duration("elapsed", snap.Elapsed),
		slog.Bool("deadlineHit", snap.DeadlineHit))
	return snap
}

// report renders the facts next to the logo.
func (r *reporter) report(ctx context.Context, cfg *config.Config) error {
	p := r.detect(ctx)

	art, err := r.art(cfg, p)
	if err != nil {
		return err
	}
	theme, err := render.DefaultTheme.Merge(cfg.Theme())
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.Color = cfg.UseColor(r.isTerminal)
	opts.BarWidth = cfg.BarWidth()
	opts.Width = cfg.TerminalWidth()
	if opts.Width == 0 {
		opts.Width = r.termWidth()
	}

	var progress snapshotter.ProgressFunc
	rd := newRedrawer(r.out, cfg.Progressive() && r.isTerminal)
	if rd.enabled {
		progress = func(partial *snapshotter.Snapshot) {
			rd.draw(render.Render(partial, art, theme, opts))
		}
	}

	snap := r.collect(ctx, cfg, p, progress)
	return rd.finish(render.Render(snap, art, theme, opts))
}

// art resolves the logo. An unreadable configured logo directory is fatal.
func (r *reporter) art(cfg *config.Config, p platform.Profile) (logo.ArtBlock, error) {
	dir, required := config.DefaultLogoDir(), false
	if cfg.LogoDir() != "" {
		dir, required = cfg.LogoDir(), true
	}

	catalog, err := logo.NewCatalog(logo.WithDir(dir, required))
	if err != nil {
		return logo.ArtBlock{}, err
	}
	art := catalog.Lookup(p, cfg.Logo())
	slog.Debug("logo resolved", slog.String("name", art.Name), slog.String("catalog", catalog.String()))
	return art, nil
}

// export writes the snapshot instead of the report.
func (r *reporter) export(ctx context.Context, cfg *config.Config, format serializer.Format, path string) error {
	p := r.detect(ctx)
	snap := r.collect(ctx, cfg, p, nil)

	var w *serializer.Writer
	if path == "" {
		w = serializer.NewWriter(format, r.out)
	} else {
		var err error
		if w, err = serializer.NewFileWriterOrStdout(format, path); err != nil {
			return err
		}
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close output", slog.String("error", err.Error()))
		}
	}()

	if err := w.Serialize(ctx, snap); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
