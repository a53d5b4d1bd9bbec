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

	"github.com/NVIDIA/hostfetch/pkg/fact"
)

const (
	// DetailTemperature holds the formatted temperature or "unavailable".
	DetailTemperature = "temperature"
	// ReasonCoresOnly marks a fact without a cores/threads distinction.
	ReasonCoresOnly = "cores only"
)

// TempReader returns the CPU temperature in degrees Celsius.
type TempReader func(ctx context.Context) (float64, error)

var modelNoise = strings.NewReplacer("(R)", "", "(r)", "", "(TM)", "", "(tm)", "", " CPU @", " @")

// cleanModel drops trademark marks and collapses whitespace.
func cleanModel(model string) string {
	return strings.Join(strings.Fields(modelNoise.Replace(" "+model+" ")), " ")
}

// describe formats "Model (8 cores, 16 threads)". A zero thread count means
// the topology is unknown and only cores are shown.
func describe(model string, cores, threads int) string {
	var counts string
	switch {
	case threads > cores && cores > 0:
		counts = fmt.Sprintf("%d cores, %d threads", cores, threads)
	case cores == 1:
		counts = "1 core"
	default:
		counts = fmt.Sprintf("%d cores", max(cores, threads))
	}
	if model == "" {
		return counts
	}
	return fmt.Sprintf("%s (%s)", model, counts)
}

// build assembles the fact from what the variant could read.
func build(model string, cores, threads int, topology bool) fact.Fact {
	model = cleanModel(model)
	if model == "" && cores == 0 && threads == 0 {
		return fact.Unavailable(fact.KindCPU, "cpu unknown")
	}

	f := fact.New(fact.KindCPU, describe(model, cores, threads))
	if !topology {
		f = fact.Degraded(fact.KindCPU, describe(model, max(cores, threads), 0), ReasonCoresOnly)
	}
	if model == "" {
		f = f.Degrade("model unknown")
	}
	if cores > 0 {
		f = f.WithDetail("cores", fmt.Sprint(cores))
	}
	if threads > 0 {
		f = f.WithDetail("threads", fmt.Sprint(threads))
	}
	return f
}

// withTemperature appends the temperature to the value when the reader is
// set. A failing reader only marks the detail.
func withTemperature(ctx context.Context, f fact.Fact, temp TempReader) fact.Fact {
	if temp == nil || f.IsUnavailable() {
		return f
	}
	c, err := temp(ctx)
	if err != nil {
		return f.WithDetail(DetailTemperature, "unavailable")
	}
	t := fmt.Sprintf("%.1f°C", c)
	f = f.WithDetail(DetailTemperature, t)
	f.Value = fmt.Sprintf("%s [%s]", f.Value, t)
	return f
}
