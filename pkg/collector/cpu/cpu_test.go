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

package cpu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

func cpuinfo(entries ...[3]string) string {
	var b strings.Builder
	for i, e := range entries {
		b.WriteString("processor\t: " + string(rune('0'+i)) + "\n")
		b.WriteString("model name\t: " + e[0] + "\n")
		if e[1] != "" {
			b.WriteString("physical id\t: " + e[1] + "\n")
		}
		if e[2] != "" {
			b.WriteString("core id\t\t: " + e[2] + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func procRoot(t *testing.T, content string) string {
	t.Helper()
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "386" {
		t.Skip("cpuinfo fixtures use the x86 layout")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpuinfo"), []byte(content), 0o600))
	return dir
}

func TestProcCollector(t *testing.T) {
	const model = "Intel(R) Core(TM) i7-9700 CPU @ 3.00GHz"

	tests := []struct {
		name    string
		content string
		want    string
		state   fact.State
	}{
		{
			name: "cores and threads",
			content: cpuinfo(
				[3]string{model, "0", "0"},
				[3]string{model, "0", "1"},
				[3]string{model, "0", "0"},
				[3]string{model, "0", "1"},
			),
			want:  "Intel Core i7-9700 @ 3.00GHz (2 cores, 4 threads)",
			state: fact.StateOK,
		},
		{
			name: "one thread per core",
			content: cpuinfo(
				[3]string{model, "0", "0"},
				[3]string{model, "0", "1"},
				[3]string{model, "1", "0"},
				[3]string{model, "1", "1"},
			),
			want:  "Intel Core i7-9700 @ 3.00GHz (4 cores)",
			state: fact.StateOK,
		},
		{
			name: "no topology",
			content: cpuinfo(
				[3]string{"QEMU Virtual CPU version 2.5+", "", ""},
				[3]string{"QEMU Virtual CPU version 2.5+", "", ""},
			),
			want:  "QEMU Virtual CPU version 2.5+ (2 cores)",
			state: fact.StateDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewProcCollector(procRoot(t, tt.content), nil)
			f := c.Collect(context.Background(), platform.Profile{Family: platform.FamilyLinux})
			assert.Equal(t, tt.state, f.Status.State)
			assert.Equal(t, tt.want, f.Value)
		})
	}
}

func TestProcCollector_Missing(t *testing.T) {
	c := NewProcCollector(t.TempDir(), nil)
	f := c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
	assert.Equal(t, "cpuinfo unreadable", f.Status.Reason)
}

func TestProcCollector_Temperature(t *testing.T) {
	root := procRoot(t, cpuinfo([3]string{"AMD Ryzen 7 5800X 8-Core Processor", "0", "0"}))

	ok := func(context.Context) (float64, error) { return 52.04, nil }
	f := NewProcCollector(root, ok).Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsOK())
	assert.Equal(t, "AMD Ryzen 7 5800X 8-Core Processor (1 core) [52.0°C]", f.Value)
	assert.Equal(t, "52.0°C", f.Details[DetailTemperature])

	failing := func(context.Context) (float64, error) { return 0, errors.New("no sensor") }
	f = NewProcCollector(root, failing).Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsOK())
	assert.Equal(t, "AMD Ryzen 7 5800X 8-Core Processor (1 core)", f.Value)
	assert.Equal(t, "unavailable", f.Details[DetailTemperature])
}

func sysctlRunner(out string) (*command.Runner, *testingexec.FakeExec) {
	fcmd := &testingexec.FakeCmd{OutputScript: []testingexec.FakeAction{
		func() ([]byte, []byte, error) { return []byte(out), nil, nil },
	}}
	fake := &testingexec.FakeExec{
		LookPathFunc: func(string) (string, error) { return "/usr/sbin/sysctl", nil },
		CommandScript: []testingexec.FakeCommandAction{
			func(cmd string, args ...string) exec.Cmd { return testingexec.InitFakeCmd(fcmd, cmd, args...) },
		},
	}
	return command.NewRunner(command.WithExec(fake)), fake
}

func TestSysctlCollector(t *testing.T) {
	t.Run("macos", func(t *testing.T) {
		r, fake := sysctlRunner("Apple M2 Pro\n10\n10\n")
		f := NewSysctlCollector(r, nil).Collect(context.Background(), platform.Profile{Family: platform.FamilyMacOS})
		assert.True(t, f.IsOK())
		assert.Equal(t, "Apple M2 Pro (10 cores)", f.Value)
		assert.Equal(t, 1, fake.CommandCalls)
	})

	t.Run("bsd", func(t *testing.T) {
		r, _ := sysctlRunner("AMD EPYC 7B13 64-Core Processor\n8\n")
		f := NewSysctlCollector(r, nil).Collect(context.Background(), platform.Profile{Family: platform.FamilyFreeBSD})
		assert.True(t, f.IsDegraded())
		assert.Equal(t, ReasonCoresOnly, f.Status.Reason)
		assert.Equal(t, "AMD EPYC 7B13 64-Core Processor (8 cores)", f.Value)
	})

	t.Run("short output", func(t *testing.T) {
		r, _ := sysctlRunner("Apple M2 Pro\n")
		f := NewSysctlCollector(r, nil).Collect(context.Background(), platform.Profile{Family: platform.FamilyMacOS})
		assert.True(t, f.IsUnavailable())
	})
}

func TestGenericCollector(t *testing.T) {
	c := NewGenericCollector(nil)
	c.info = func(context.Context) ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{ModelName: "Neoverse-N1"}}, nil
	}
	c.counts = func(_ context.Context, logical bool) (int, error) {
		if logical {
			return 16, nil
		}
		return 8, nil
	}

	f := c.Collect(context.Background(), platform.Profile{})
	assert.Equal(t, "Neoverse-N1 (8 cores, 16 threads)", f.Value)

	c.info = func(context.Context) ([]cpu.InfoStat, error) { return nil, errors.New("boom") }
	f = c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
}

func TestPickSensor(t *testing.T) {
	temps := []sensors.TemperatureStat{
		{SensorKey: "nvme_composite", Temperature: 40},
		{SensorKey: "coretemp_core_0", Temperature: 55},
		{SensorKey: "coretemp_package_id_0", Temperature: 60},
	}
	got, err := pickSensor(temps)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, got, 0.001)

	_, err = pickSensor([]sensors.TemperatureStat{{SensorKey: "nvme_composite", Temperature: 40}})
	assert.Error(t, err)
}

func TestCleanModel(t *testing.T) {
	assert.Equal(t, "Intel Core i7-9700 @ 3.00GHz", cleanModel("Intel(R) Core(TM) i7-9700 CPU @ 3.00GHz"))
	assert.Equal(t, "Apple M1", cleanModel("  Apple   M1 "))
}
