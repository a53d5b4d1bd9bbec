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

package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

func TestFormatUsage(t *testing.T) {
	assert.Equal(t, "4.2/15.6 GiB", FormatUsage(4509715661, 16750372454))
	assert.Equal(t, "256.0/512.0 MiB", FormatUsage(256*mib, 512*mib))
}

func TestProcCollector(t *testing.T) {
	tests := []struct {
		name    string
		meminfo string
		value   string
		ratio   float64
		state   fact.State
	}{
		{
			name:    "available",
			meminfo: "MemTotal:       16384000 kB\nMemFree:         1024000 kB\nMemAvailable:   12288000 kB\nBuffers:          100000 kB\nCached:          2000000 kB\n",
			value:   "3.9/15.6 GiB",
			ratio:   0.25,
			state:   fact.StateOK,
		},
		{
			name:    "free based",
			meminfo: "MemTotal:       16384000 kB\nMemFree:         4096000 kB\nBuffers:         4096000 kB\nCached:          4096000 kB\n",
			value:   "3.9/15.6 GiB",
			ratio:   0.25,
			state:   fact.StateDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "meminfo"), []byte(tt.meminfo), 0o600))

			f := NewProcCollector(dir).Collect(context.Background(), platform.Profile{})
			assert.Equal(t, tt.state, f.Status.State)
			assert.Equal(t, tt.value, f.Value)
			require.NotNil(t, f.Ratio)
			assert.InDelta(t, tt.ratio, *f.Ratio, 0.001)
			if tt.state == fact.StateDegraded {
				assert.Equal(t, ReasonApproximated, f.Status.Reason)
			}
		})
	}
}

func TestProcCollector_Missing(t *testing.T) {
	f := NewProcCollector(t.TempDir()).Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
	assert.Nil(t, f.Ratio)
}

func TestGenericCollector(t *testing.T) {
	c := NewGenericCollector()
	c.virtual = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 8 * gib, Available: 6 * gib}, nil
	}
	f := c.Collect(context.Background(), platform.Profile{})
	assert.Equal(t, "2.0/8.0 GiB", f.Value)
	require.NotNil(t, f.Ratio)
	assert.InDelta(t, 0.25, *f.Ratio, 0.001)

	c.virtual = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errors.New("nope") }
	f = c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
}
