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

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
)

// Setting keys shared by the YAML file, the environment and the flags.
const (
	KeyColor          = "color"
	KeyGPU            = "gpu"
	KeyBootloader     = "bootloader"
	KeyBattery        = "battery"
	KeyCPUTemp        = "cpu-temp"
	KeyGPUTemp        = "gpu-temp"
	KeyDisksDetailed  = "disks-detailed"
	KeyIcons          = "icons"
	KeyCache          = "cache"
	KeyCachePath      = "cache-path"
	KeyProgressive    = "progressive"
	KeyDeadline       = "deadline"
	KeyAdapterTimeout = "adapter-timeout"
	KeyBarWidth       = "bar-width"
	KeyWidth          = "width"
	KeyLogoDir        = "logo-dir"
	KeyLogo           = "logo"
	KeyOrder          = "order"
	KeyTheme          = "theme"
)

// EnvPrefix prefixes every environment variable read by hostfetch.
const EnvPrefix = "HOSTFETCH_"

// Keys lists the keys that can be set from a single string.
var Keys = []string{
	KeyColor, KeyGPU, KeyBootloader, KeyBattery, KeyCPUTemp, KeyGPUTemp,
	KeyDisksDetailed, KeyIcons, KeyCache, KeyCachePath, KeyProgressive,
	KeyDeadline, KeyAdapterTimeout, KeyBarWidth, KeyWidth, KeyLogoDir,
	KeyLogo, KeyOrder,
}

// EnvName returns the environment variable for a key, e.g. HOSTFETCH_CPU_TEMP.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Setting parses the string form of a key into an Option.
func Setting(key, value string) (Option, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyColor:
		return WithColor(ColorMode(strings.ToLower(value))), nil
	case KeyGPU, KeyBootloader, KeyBattery, KeyCPUTemp, KeyGPUTemp,
		KeyDisksDetailed, KeyIcons, KeyCache, KeyProgressive:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, settingError(key, value, err)
		}
		return boolOption(key, b), nil
	case KeyDeadline, KeyAdapterTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, settingError(key, value, err)
		}
		if key == KeyDeadline {
			return WithDeadline(d), nil
		}
		return WithAdapterTimeout(d), nil
	case KeyBarWidth, KeyWidth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, settingError(key, value, err)
		}
		if key == KeyBarWidth {
			return WithBarWidth(n), nil
		}
		return WithTerminalWidth(n), nil
	case KeyCachePath:
		return WithCachePath(value), nil
	case KeyLogoDir:
		return WithLogoDir(value), nil
	case KeyLogo:
		return WithLogo(value), nil
	case KeyOrder:
		kinds, err := ParseOrder(strings.Split(value, ","))
		if err != nil {
			return nil, err
		}
		return WithOrder(kinds...), nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown setting %q", key), map[string]any{"key": key})
	}
}

// ParseOrder converts kind names into kinds. Blank names are skipped.
func ParseOrder(names []string) ([]fact.Kind, error) {
	kinds := make([]fact.Kind, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		k, ok := fact.ParseKind(n)
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("unknown fact kind %q", n), map[string]any{"key": KeyOrder})
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func boolOption(key string, b bool) Option {
	switch key {
	case KeyGPU:
		return WithGPU(b)
	case KeyBootloader:
		return WithBootloader(b)
	case KeyBattery:
		return WithBattery(b)
	case KeyCPUTemp:
		return WithCPUTemp(b)
	case KeyGPUTemp:
		return WithGPUTemp(b)
	case KeyDisksDetailed:
		return WithDisksDetailed(b)
	case KeyIcons:
		return WithIcons(b)
	case KeyCache:
		return WithCache(b)
	default:
		return WithProgressive(b)
	}
}

func settingError(key, value string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidConfig,
		fmt.Sprintf("invalid value %q for %s", value, key), err,
		map[string]any{"key": key})
}
