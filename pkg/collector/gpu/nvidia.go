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
	"strconv"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/errors"
)

var nvidiaSMIArgs = []string{
	"--query-gpu=name,temperature.gpu,pci.bus_id",
	"--format=csv,noheader,nounits",
}

// nvidiaSMI lists NVIDIA GPUs. Output lines look like:
//
//	NVIDIA GeForce RTX 3080, 45, 00000000:01:00.0
func (c *Collector) nvidiaSMI(ctx context.Context) ([]Device, error) {
	lines, err := c.runner.Lines(ctx, "nvidia-smi", nvidiaSMIArgs...)
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		d := Device{Name: name, Vendor: "NVIDIA"}
		if len(fields) > 1 {
			if t, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64); err == nil {
				d.Temperature = &t
			}
		}
		if len(fields) > 2 {
			d.Slot = strings.TrimSpace(fields[2])
		}
		devices = append(devices, d)
	}
	if len(devices) == 0 {
		return nil, errors.New(errors.ErrCodeSourceParse, "no gpu in nvidia-smi output")
	}
	return devices, nil
}
