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

package uptime

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/host"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// BootTimeLayout is the display layout of the boot time fact.
const BootTimeLayout = "2006-01-02 15:04"

// BootSource returns the time the host booted.
type BootSource func(ctx context.Context) (time.Time, error)

// ProcBootTime reads btime from /proc/stat under procRoot.
func ProcBootTime(procRoot string) BootSource {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	return func(ctx context.Context) (time.Time, error) {
		if err := ctx.Err(); err != nil {
			return time.Time{}, err
		}
		fs, err := procfs.NewFS(procRoot)
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeSourceUnavailable, "procfs unavailable", err)
		}
		st, err := fs.Stat()
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeSourceParse, "stat unreadable", err)
		}
		if st.BootTime == 0 {
			return time.Time{}, errors.New(errors.ErrCodeSourceParse, "boot time missing")
		}
		return time.Unix(int64(st.BootTime), 0), nil
	}
}

// HostBootTime reads the boot time through gopsutil.
func HostBootTime(ctx context.Context) (time.Time, error) {
	bt, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeSourceUnavailable, "boot time unknown", err)
	}
	return time.Unix(int64(bt), 0), nil
}

// FormatDuration renders d as "3d 4h 5m", "4h 5m" or "5m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Collector reports the time since boot.
type Collector struct {
	boot  BootSource
	clock clock.PassiveClock
}

// NewCollector returns an uptime collector.
func NewCollector(boot BootSource, clk clock.PassiveClock) *Collector {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Collector{boot: boot, clock: clk}
}

// Collect implements the collector contract for fact.KindUptime.
func (c *Collector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	bt, err := c.boot(ctx)
	if err != nil {
		return fact.FromError(fact.KindUptime, err)
	}
	up := c.clock.Since(bt)
	if up < 0 {
		return fact.Degraded(fact.KindUptime, FormatDuration(0), "boot time in the future")
	}
	return fact.New(fact.KindUptime, FormatDuration(up)).
		WithDetail("seconds", fmt.Sprint(int64(up/time.Second)))
}

// BootTimeCollector reports when the host booted, in local time.
type BootTimeCollector struct {
	boot     BootSource
	location *time.Location
}

// NewBootTimeCollector returns a boot time collector. A nil location uses
// time.Local.
func NewBootTimeCollector(boot BootSource, location *time.Location) *BootTimeCollector {
	if location == nil {
		location = time.Local
	}
	return &BootTimeCollector{boot: boot, location: location}
}

// Collect implements the collector contract for fact.KindBootTime.
func (c *BootTimeCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	bt, err := c.boot(ctx)
	if err != nil {
		return fact.FromError(fact.KindBootTime, err)
	}
	return fact.New(fact.KindBootTime, bt.In(c.location).Format(BootTimeLayout)).
		WithDetail("unix", fmt.Sprint(bt.Unix()))
}
