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

package disk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// RootMount is the mount point reported when detailed output is off.
const RootMount = "/"

var pseudoFilesystems = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devfs":       true,
	"devpts":      true,
	"devtmpfs":    true,
	"efivarfs":    true,
	"fdescfs":     true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"linprocfs":   true,
	"mqueue":      true,
	"nsfs":        true,
	"nullfs":      true,
	"overlay":     true,
	"proc":        true,
	"procfs":      true,
	"pstore":      true,
	"ramfs":       true,
	"rpc_pipefs":  true,
	"securityfs":  true,
	"squashfs":    true,
	"sysfs":       true,
	"tmpfs":       true,
	"tracefs":     true,
}

// IsPseudo reports whether fstype is a virtual filesystem without real storage.
func IsPseudo(fstype string) bool {
	fstype = strings.ToLower(fstype)
	if pseudoFilesystems[fstype] {
		return true
	}
	return strings.HasPrefix(fstype, "cgroup") || strings.HasPrefix(fstype, "fuse.gvfs") ||
		strings.HasPrefix(fstype, "fuse.portal")
}

// Option configures a Collector.
type Option func(*Collector)

// WithDetailed emits one part per filesystem instead of the root only.
func WithDetailed(detailed bool) Option {
	return func(c *Collector) {
		c.detailed = detailed
	}
}

// WithSources overrides the gopsutil partition and usage functions.
func WithSources(
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error),
	usage func(ctx context.Context, path string) (*disk.UsageStat, error),
) Option {
	return func(c *Collector) {
		c.partitions = partitions
		c.usage = usage
	}
}

// Collector reports disk usage.
type Collector struct {
	detailed   bool
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
}

// NewCollector returns a disk collector backed by gopsutil.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type mount struct {
	point string
	used  uint64
	total uint64
}

func (m mount) value() string {
	return fmt.Sprintf("%s / %s", humanize.IBytes(m.used), humanize.IBytes(m.total))
}

func (m mount) ratio() float64 {
	r, _ := fact.RatioOf(m.used, m.total)
	return r
}

// Collect implements the collector contract for fact.KindDisk.
func (c *Collector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	parts, err := c.partitions(ctx, false)
	if err != nil {
		return fact.FromError(fact.KindDisk, errors.Wrap(errors.ErrCodeSourceUnavailable, "partitions unknown", err))
	}

	mounts := c.mounts(ctx, dedupe(parts))
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindDisk, err)
	}
	if len(mounts) == 0 {
		return fact.Unavailable(fact.KindDisk, "no filesystems")
	}

	primary := mounts[0]
	for _, m := range mounts {
		if m.point == RootMount {
			primary = m
			break
		}
	}

	f := fact.New(fact.KindDisk, primary.value()).
		WithLabel(label(primary.point)).
		WithRatio(primary.ratio()).
		WithDetail("mount", primary.point)

	if !c.detailed {
		return f
	}

	if len(mounts) > defaults.MaxDiskParts {
		mounts = mounts[:defaults.MaxDiskParts]
	}
	rows := make([]fact.Part, 0, len(mounts))
	for _, m := range mounts {
		rows = append(rows, fact.Part{
			Label: label(m.point),
			Value: m.value(),
			Ratio: fact.PartRatio(m.ratio()),
		})
	}
	return f.WithParts(rows...)
}

func (c *Collector) mounts(ctx context.Context, parts []disk.PartitionStat) []mount {
	mounts := make([]mount, 0, len(parts))
	for _, p := range parts {
		if ctx.Err() != nil {
			break
		}
		u, err := c.usage(ctx, p.Mountpoint)
		if err != nil {
			slog.Debug("disk usage unavailable",
				slog.String("mount", p.Mountpoint),
				slog.String("error", err.Error()))
			continue
		}
		if u.Total == 0 {
			continue
		}
		mounts = append(mounts, mount{point: p.Mountpoint, used: u.Used, total: u.Total})
	}
	return mounts
}

// dedupe drops pseudo filesystems and keeps one mount per device, preferring
// the root mount when a device is mounted more than once.
func dedupe(parts []disk.PartitionStat) []disk.PartitionStat {
	seen := make(map[string]int, len(parts))
	out := make([]disk.PartitionStat, 0, len(parts))
	for _, p := range parts {
		if IsPseudo(p.Fstype) {
			continue
		}
		key := p.Device
		if key == "" || key == "none" {
			key = p.Mountpoint
		}
		if i, ok := seen[key]; ok {
			if p.Mountpoint == RootMount {
				out[i] = p
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, p)
	}
	return out
}

func label(mountpoint string) string {
	return fmt.Sprintf("%s (%s)", fact.KindDisk.Label(), mountpoint)
}
