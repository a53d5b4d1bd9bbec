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
	"path"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/NVIDIA/hostfetch/pkg/errors"
)

const hwmonPattern = "sys/class/drm/card*/device/hwmon/hwmon*/temp1_input"

var displayClasses = []string{"vga compatible controller", "3d controller", "display controller"}

var vendorNames = map[string]string{
	"Advanced Micro Devices, Inc. [AMD/ATI]": "AMD",
	"NVIDIA Corporation":                     "NVIDIA",
	"Intel Corporation":                      "Intel",
}

// lspci lists display controllers from machine readable lspci output:
//
//	00:02.0 "VGA compatible controller" "Intel Corporation" "UHD Graphics 630" -r02 "Dell" "Device 0869"
func (c *Collector) lspci(ctx context.Context) ([]Device, error) {
	lines, err := c.runner.Lines(ctx, "lspci", "-mm")
	if err != nil {
		return nil, err
	}

	var temps map[string]float64
	if c.temperature {
		temps = c.drmTemperatures()
	}

	var devices []Device
	for _, line := range lines {
		fields := splitQuoted(line)
		if len(fields) < 4 || !isDisplayClass(fields[1]) {
			continue
		}
		slot, vendor, model := fields[0], fields[2], fields[3]
		short := vendor
		if s, ok := vendorNames[vendor]; ok {
			short = s
		}
		d := Device{
			Name:       strings.TrimSpace(short + " " + model),
			Vendor:     short,
			Slot:       slot,
			Integrated: integrated(vendor, model),
		}
		if t, ok := temps[slot]; ok {
			d.Temperature = &t
		}
		devices = append(devices, d)
	}
	if len(devices) == 0 {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "no display controller")
	}
	return devices, nil
}

func isDisplayClass(class string) bool {
	class = strings.ToLower(class)
	for _, c := range displayClasses {
		if strings.Contains(class, c) {
			return true
		}
	}
	return false
}

// splitQuoted splits a line into whitespace separated fields where double
// quoted fields may contain spaces. Flag fields such as -r02 are dropped.
func splitQuoted(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
		started bool
	)
	flush := func() {
		if started {
			s := current.String()
			if quoted || !strings.HasPrefix(s, "-") {
				fields = append(fields, s)
			}
		}
		current.Reset()
		started, quoted = false, false
	}

	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			if inQuotes {
				inQuotes = false
				continue
			}
			inQuotes, quoted, started = true, true, true
		case r == ' ' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return fields
}

// drmTemperatures maps PCI slots without the domain prefix ("01:00.0") to
// the first hwmon temperature of the DRM card on that slot.
func (c *Collector) drmTemperatures() map[string]float64 {
	matches, err := doublestar.Glob(c.parser.FS(), hwmonPattern)
	if err != nil || len(matches) == 0 {
		return nil
	}

	temps := make(map[string]float64, len(matches))
	for _, m := range matches {
		// sys/class/drm/cardN/device/hwmon/hwmonM/temp1_input
		device := path.Dir(path.Dir(path.Dir(m)))
		uevent, err := c.parser.GetMap("/" + device + "/uevent")
		if err != nil {
			continue
		}
		slot := uevent["PCI_SLOT_NAME"]
		if i := strings.Index(slot, ":"); i >= 0 && strings.Count(slot, ":") == 2 {
			slot = slot[i+1:]
		}
		raw, err := c.parser.GetString("/" + m)
		if err != nil {
			continue
		}
		milli, err := strconv.ParseFloat(raw, 64)
		if err != nil || slot == "" {
			continue
		}
		if _, seen := temps[slot]; !seen {
			temps[slot] = milli / 1000
		}
	}
	return temps
}
