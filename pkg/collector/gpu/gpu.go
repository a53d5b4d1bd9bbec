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

package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// DetailTemperature holds the formatted temperature or "unavailable".
const DetailTemperature = "temperature"

// Device is one GPU found by a source.
type Device struct {
	Name       string
	Vendor     string
	Slot       string
	Integrated bool
	// Temperature in degrees Celsius, nil when unknown.
	Temperature *float64
}

// Select returns the first discrete device, else the first integrated one.
func Select(devices []Device) (Device, bool) {
	for _, d := range devices {
		if !d.Integrated {
			return d, true
		}
	}
	if len(devices) > 0 {
		return devices[0], true
	}
	return Device{}, false
}

// source lists devices from one interface.
type source struct {
	name string
	list func(ctx context.Context) ([]Device, error)
}

// Collector reports the primary GPU.
type Collector struct {
	runner      *command.Runner
	parser      *file.Parser
	temperature bool
}

// NewCollector returns a GPU collector. With temperature set the
// temperature detail is filled.
func NewCollector(runner *command.Runner, parser *file.Parser, temperature bool) *Collector {
	return &Collector{runner: runner, parser: parser, temperature: temperature}
}

func (c *Collector) sources(p platform.Profile) []source {
	var s []source
	if p.Family == platform.FamilyMacOS {
		if p.HasCommand("system_profiler") {
			s = append(s, source{name: "system_profiler", list: c.systemProfiler})
		}
		return s
	}
	if p.HasCommand("nvidia-smi") {
		s = append(s, source{name: "nvidia-smi", list: c.nvidiaSMI})
	}
	if p.HasCommand("lspci") {
		s = append(s, source{name: "lspci", list: c.lspci})
	}
	return s
}

// Collect implements the collector contract for fact.KindGPU.
func (c *Collector) Collect(ctx context.Context, p platform.Profile) fact.Fact {
	sources := c.sources(p)
	if len(sources) == 0 {
		return fact.Unavailable(fact.KindGPU, "no gpu source")
	}

	var lastErr error
	for _, s := range sources {
		devices, err := s.list(ctx)
		if err != nil {
			slog.Debug("gpu source failed", slog.String("source", s.name), slog.String("error", err.Error()))
			lastErr = err
			if errors.IsCode(err, errors.ErrCodeSourceTimeout) {
				break
			}
			continue
		}
		d, ok := Select(devices)
		if !ok {
			continue
		}
		return c.build(d, s.name)
	}

	if lastErr != nil {
		return fact.FromError(fact.KindGPU, lastErr)
	}
	return fact.Unavailable(fact.KindGPU, "no gpu found")
}

func (c *Collector) build(d Device, source string) fact.Fact {
	f := fact.New(fact.KindGPU, d.Name).WithDetail("source", source)
	if d.Integrated {
		f = f.WithDetail("type", "integrated")
	} else {
		f = f.WithDetail("type", "discrete")
	}
	if !c.temperature {
		return f
	}
	if d.Temperature == nil {
		return f.WithDetail(DetailTemperature, "unavailable")
	}
	t := fmt.Sprintf("%.1f°C", *d.Temperature)
	f = f.WithDetail(DetailTemperature, t)
	f.Value = fmt.Sprintf("%s [%s]", f.Value, t)
	return f
}

// integrated reports whether a vendor and model look like an integrated GPU.
func integrated(vendor, model string) bool {
	s := strings.ToLower(vendor + " " + model)
	return strings.Contains(s, "intel") ||
		strings.Contains(s, "integrated") ||
		strings.Contains(s, "built-in") ||
		strings.Contains(s, "builtin")
}
