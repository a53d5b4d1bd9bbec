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

package battery

import (
	"context"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

const (
	// ReasonNoBattery is the unavailable reason on hosts without a battery.
	ReasonNoBattery = "no battery"

	// DetailStatus holds the charging state.
	DetailStatus = "status"
	// DetailCapacity holds the charge level in percent.
	DetailCapacity = "capacity"

	powerSupplyGlob = "sys/class/power_supply/BAT*"
	unknownStatus   = "Unknown"
)

var title = cases.Title(language.English)

func build(capacity float64, status string) fact.Fact {
	status = strings.TrimSpace(status)
	if status == "" {
		status = unknownStatus
	}
	status = title.String(status)
	capacity = min(max(capacity, 0), 100)
	return fact.New(fact.KindBattery, status).
		WithRatio(capacity/100).
		WithDetail(DetailStatus, status).
		WithDetail(DetailCapacity, strconv.FormatFloat(capacity, 'f', 0, 64))
}

// SysfsCollector reads /sys/class/power_supply.
type SysfsCollector struct {
	parser *file.Parser
}

// NewSysfsCollector returns a collector reading the power supply class
// through parser.
func NewSysfsCollector(parser *file.Parser) *SysfsCollector {
	return &SysfsCollector{parser: parser}
}

// Collect implements the collector contract for fact.KindBattery.
func (c *SysfsCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	supplies, err := doublestar.Glob(c.parser.FS(), powerSupplyGlob)
	if err != nil {
		return fact.FromError(fact.KindBattery, errors.Wrap(errors.ErrCodeSourceUnavailable, "power supplies unknown", err))
	}
	for _, dir := range supplies {
		if err := ctx.Err(); err != nil {
			return fact.FromError(fact.KindBattery, err)
		}
		capacity, ok := c.capacity("/" + dir)
		if !ok {
			continue
		}
		status, _ := c.parser.GetString(path.Join("/", dir, "status"))
		return build(capacity, status).WithDetail("device", path.Base(dir))
	}
	return fact.Unavailable(fact.KindBattery, ReasonNoBattery)
}

func (c *SysfsCollector) capacity(dir string) (float64, bool) {
	if s, err := c.parser.GetString(path.Join(dir, "capacity")); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}
	for _, prefix := range []string{"energy", "charge"} {
		now, errNow := c.parser.GetString(path.Join(dir, prefix+"_now"))
		full, errFull := c.parser.GetString(path.Join(dir, prefix+"_full"))
		if errNow != nil || errFull != nil {
			continue
		}
		n, errNow := strconv.ParseFloat(now, 64)
		f, errFull := strconv.ParseFloat(full, 64)
		if errNow != nil || errFull != nil || f == 0 {
			continue
		}
		return n / f * 100, true
	}
	return 0, false
}

var pmsetLine = regexp.MustCompile(`(\d+)%;\s*([^;]+)`)

// PmsetCollector runs `pmset -g batt` on macOS.
type PmsetCollector struct {
	runner *command.Runner
}

// NewPmsetCollector returns a pmset based collector.
func NewPmsetCollector(runner *command.Runner) *PmsetCollector {
	return &PmsetCollector{runner: runner}
}

// Collect implements the collector contract for fact.KindBattery.
func (c *PmsetCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	lines, err := c.runner.Lines(ctx, "pmset", "-g", "batt")
	if err != nil {
		return fact.FromError(fact.KindBattery, err)
	}
	f, err := ParsePmset(lines)
	if err != nil {
		return fact.FromError(fact.KindBattery, err)
	}
	return f
}

// ParsePmset extracts the first internal battery from pmset output.
func ParsePmset(lines []string) (fact.Fact, error) {
	for _, line := range lines {
		if !strings.Contains(line, "InternalBattery") {
			continue
		}
		m := pmsetLine.FindStringSubmatch(line)
		if m == nil {
			return fact.Fact{}, errors.NewWithContext(errors.ErrCodeSourceParse,
				"unrecognized pmset output", map[string]any{"line": line})
		}
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fact.Fact{}, errors.Wrap(errors.ErrCodeSourceParse, "unrecognized pmset output", err)
		}
		return build(pct, m[2]), nil
	}
	return fact.Unavailable(fact.KindBattery, ReasonNoBattery), nil
}
