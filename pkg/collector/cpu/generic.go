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
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// GenericCollector reads CPU identity through gopsutil.
type GenericCollector struct {
	temp   TempReader
	info   func(ctx context.Context) ([]cpu.InfoStat, error)
	counts func(ctx context.Context, logical bool) (int, error)
}

// NewGenericCollector returns a gopsutil based collector.
func NewGenericCollector(temp TempReader) *GenericCollector {
	return &GenericCollector{
		temp:   temp,
		info:   cpu.InfoWithContext,
		counts: cpu.CountsWithContext,
	}
}

// Collect implements the collector contract for fact.KindCPU.
func (c *GenericCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	infos, err := c.info(ctx)
	if err != nil || len(infos) == 0 {
		return fact.FromError(fact.KindCPU, errors.Wrap(errors.ErrCodeSourceUnavailable, "cpu unknown", err))
	}

	cores, coreErr := c.counts(ctx, false)
	threads, threadErr := c.counts(ctx, true)
	topology := coreErr == nil && threadErr == nil && cores > 0

	f := build(infos[0].ModelName, cores, threads, topology)
	return withTemperature(ctx, f, c.temp)
}

// cpuSensors are sensor key prefixes of package or die temperatures,
// in preference order.
var cpuSensors = []string{
	"coretemp_package_id_0",
	"k10temp_tctl",
	"zenpower_tdie",
	"cpu_thermal",
	"coretemp",
	"k10temp",
	"tc0p", // macOS SMC CPU proximity
}

// SensorTemperature reads the CPU temperature from the hardware sensors
// exposed through gopsutil.
func SensorTemperature(ctx context.Context) (float64, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if len(temps) == 0 {
		if err == nil {
			err = fmt.Errorf("no sensors")
		}
		return 0, errors.Wrap(errors.ErrCodeSourceUnavailable, "no temperature sensors", err)
	}
	return pickSensor(temps)
}

func pickSensor(temps []sensors.TemperatureStat) (float64, error) {
	for _, prefix := range cpuSensors {
		for _, t := range temps {
			if strings.HasPrefix(strings.ToLower(t.SensorKey), prefix) && t.Temperature > 0 {
				return t.Temperature, nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeSourceUnavailable, "no cpu temperature sensor")
}
