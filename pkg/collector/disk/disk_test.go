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
	"testing"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostfetch/pkg/platform"
)

const gib = 1 << 30

func sources(parts []disk.PartitionStat, usage map[string]disk.UsageStat) Option {
	return WithSources(
		func(context.Context, bool) ([]disk.PartitionStat, error) {
			return parts, nil
		},
		func(_ context.Context, path string) (*disk.UsageStat, error) {
			u, ok := usage[path]
			if !ok {
				return nil, fmt.Errorf("no usage for %s", path)
			}
			return &u, nil
		},
	)
}

var (
	testPartitions = []disk.PartitionStat{
		{Device: "proc", Mountpoint: "/proc", Fstype: "proc"},
		{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", Fstype: "vfat"},
		{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"},
		{Device: "/dev/nvme0n1p2", Mountpoint: "/var/lib/docker", Fstype: "ext4"},
		{Device: "tmpfs", Mountpoint: "/tmp", Fstype: "tmpfs"},
		{Device: "/dev/sda1", Mountpoint: "/data", Fstype: "xfs"},
		{Device: "cgroup2", Mountpoint: "/sys/fs/cgroup", Fstype: "cgroup2"},
	}
	testUsage = map[string]disk.UsageStat{
		"/boot/efi": {Total: gib / 2, Used: gib / 8},
		"/":         {Total: 100 * gib, Used: 25 * gib},
		"/data":     {Total: 1000 * gib, Used: 500 * gib},
	}
)

func TestCollect_RootOnly(t *testing.T) {
	f := NewCollector(sources(testPartitions, testUsage)).Collect(context.Background(), platform.Profile{})

	require.True(t, f.IsOK())
	assert.Equal(t, "Disk (/)", f.Label)
	assert.Equal(t, "25 GiB / 100 GiB", f.Value)
	require.NotNil(t, f.Ratio)
	assert.InDelta(t, 0.25, *f.Ratio, 1e-9)
	assert.Empty(t, f.Parts)
}

func TestCollect_Detailed(t *testing.T) {
	f := NewCollector(WithDetailed(true), sources(testPartitions, testUsage)).
		Collect(context.Background(), platform.Profile{})

	require.True(t, f.IsOK())
	require.Len(t, f.Parts, 3)
	assert.Equal(t, "Disk (/boot/efi)", f.Parts[0].Label)
	assert.Equal(t, "Disk (/)", f.Parts[1].Label)
	assert.Equal(t, "Disk (/data)", f.Parts[2].Label)
	assert.Equal(t, "500 GiB / 1000 GiB", f.Parts[2].Value)
	require.NotNil(t, f.Parts[2].Ratio)
	assert.InDelta(t, 0.5, *f.Parts[2].Ratio, 1e-9)
}

func TestCollect_DetailedCapped(t *testing.T) {
	var parts []disk.PartitionStat
	usage := map[string]disk.UsageStat{}
	for i := range 12 {
		mp := fmt.Sprintf("/mnt/d%d", i)
		parts = append(parts, disk.PartitionStat{Device: fmt.Sprintf("/dev/sd%c1", 'a'+i), Mountpoint: mp, Fstype: "ext4"})
		usage[mp] = disk.UsageStat{Total: gib, Used: gib / 2}
	}

	f := NewCollector(WithDetailed(true), sources(parts, usage)).Collect(context.Background(), platform.Profile{})
	assert.Len(t, f.Parts, 8)
}

func TestCollect_NoRootUsesFirst(t *testing.T) {
	parts := []disk.PartitionStat{{Device: "/dev/sda1", Mountpoint: "/data", Fstype: "xfs"}}
	f := NewCollector(sources(parts, testUsage)).Collect(context.Background(), platform.Profile{})
	assert.Equal(t, "Disk (/data)", f.Label)
}

func TestCollect_Unavailable(t *testing.T) {
	t.Run("only pseudo filesystems", func(t *testing.T) {
		parts := []disk.PartitionStat{{Device: "tmpfs", Mountpoint: "/tmp", Fstype: "tmpfs"}}
		f := NewCollector(sources(parts, testUsage)).Collect(context.Background(), platform.Profile{})
		assert.True(t, f.IsUnavailable())
		assert.Equal(t, "no filesystems", f.Status.Reason)
	})

	t.Run("partition listing fails", func(t *testing.T) {
		c := NewCollector(WithSources(
			func(context.Context, bool) ([]disk.PartitionStat, error) {
				return nil, fmt.Errorf("boom")
			},
			nil,
		))
		f := c.Collect(context.Background(), platform.Profile{})
		assert.True(t, f.IsUnavailable())
		assert.Equal(t, "partitions unknown", f.Status.Reason)
	})
}

func TestDedupe_PrefersRoot(t *testing.T) {
	parts := dedupe([]disk.PartitionStat{
		{Device: "/dev/sda2", Mountpoint: "/home", Fstype: "btrfs"},
		{Device: "/dev/sda2", Mountpoint: "/", Fstype: "btrfs"},
		{Device: "/dev/sda2", Mountpoint: "/var", Fstype: "btrfs"},
	})
	require.Len(t, parts, 1)
	assert.Equal(t, "/", parts[0].Mountpoint)
}

func TestIsPseudo(t *testing.T) {
	tests := []struct {
		fstype string
		want   bool
	}{
		{"ext4", false},
		{"apfs", false},
		{"zfs", false},
		{"tmpfs", true},
		{"cgroup2", true},
		{"fuse.gvfsd-fuse", true},
		{"Overlay", true},
	}
	for _, tt := range tests {
		t.Run(tt.fstype, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPseudo(tt.fstype))
		})
	}
}
