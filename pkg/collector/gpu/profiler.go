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

	"howett.net/plist"

	"github.com/NVIDIA/hostfetch/pkg/errors"
)

type displaysReport []struct {
	Items []displayItem `plist:"_items"`
}

type displayItem struct {
	Model  string `plist:"sppci_model"`
	Bus    string `plist:"sppci_bus"`
	Vendor string `plist:"spdisplays_vendor"`
}

const builtinBus = "spdisplays_builtin"

// systemProfiler lists GPUs from the macOS display report.
func (c *Collector) systemProfiler(ctx context.Context) ([]Device, error) {
	out, err := c.runner.Output(ctx, "system_profiler", "-xml", "SPDisplaysDataType")
	if err != nil {
		return nil, err
	}
	return parseDisplays([]byte(out))
}

func parseDisplays(data []byte) ([]Device, error) {
	var report displaysReport
	if _, err := plist.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceParse, "invalid system_profiler output", err)
	}

	var devices []Device
	for _, section := range report {
		for _, item := range section.Items {
			if item.Model == "" {
				continue
			}
			devices = append(devices, Device{
				Name:       item.Model,
				Vendor:     item.Vendor,
				Integrated: item.Bus == builtinBus || integrated(item.Vendor, item.Model),
			})
		}
	}
	if len(devices) == 0 {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "no display in system_profiler output")
	}
	return devices, nil
}
