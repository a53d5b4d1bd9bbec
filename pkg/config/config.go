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
	"maps"
	"slices"
	"time"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/render"
)

// ColorMode selects when escape sequences are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ColorModes lists the accepted color modes.
var ColorModes = []ColorMode{ColorAuto, ColorAlways, ColorNever}

const maxBarWidth = 200

// Config is the resolved configuration. It is read-only after NewConfig.
type Config struct {
	color ColorMode

	showGPU           bool
	showBootloader    bool
	showBattery       bool
	showCPUTemp       bool
	showGPUTemp       bool
	showDisksDetailed bool
	showIcons         bool

	cacheEnabled bool
	cachePath    string
	progressive  bool

	deadline       time.Duration
	adapterTimeout time.Duration

	barWidth      int
	terminalWidth int

	logoDir string
	logo    string

	order []fact.Kind
	theme map[string]string
}

// Option configures a Config.
type Option func(*Config)

// NewConfig returns a Config with default values and the options applied in order.
func NewConfig(options ...Option) *Config {
	c := &Config{
		color:          ColorAuto,
		showGPU:        true,
		showBootloader: true,
		showBattery:    true,
		cacheEnabled:   true,
		deadline:       defaults.CollectionDeadline,
		adapterTimeout: defaults.AdapterTimeout,
		barWidth:       defaults.BarWidth,
		order:          slices.Clone(fact.Kinds),
		theme:          make(map[string]string),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Color returns the color mode.
func (c *Config) Color() ColorMode { return c.color }

// UseColor resolves the color mode against whether stdout is a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// ShowGPU reports whether the GPU fact is collected.
func (c *Config) ShowGPU() bool { return c.showGPU }

// ShowBootloader reports whether the bootloader fact is collected.
func (c *Config) ShowBootloader() bool { return c.showBootloader }

// ShowBattery reports whether the battery fact is collected.
func (c *Config) ShowBattery() bool { return c.showBattery }

// ShowCPUTemp reports whether the CPU value carries a temperature.
func (c *Config) ShowCPUTemp() bool { return c.showCPUTemp }

// ShowGPUTemp reports whether the GPU value carries a temperature.
func (c *Config) ShowGPUTemp() bool { return c.showGPUTemp }

// ShowDisksDetailed reports whether every mounted filesystem gets a row.
func (c *Config) ShowDisksDetailed() bool { return c.showDisksDetailed }

// ShowIcons reports whether the OS value is prefixed with a distro glyph.
func (c *Config) ShowIcons() bool { return c.showIcons }

// CacheEnabled reports whether the fact cache is read and written.
func (c *Config) CacheEnabled() bool { return c.cacheEnabled }

// CachePath returns the cache file override, empty for the default location.
func (c *Config) CachePath() string { return c.cachePath }

// Progressive reports whether the report is redrawn while facts arrive.
func (c *Config) Progressive() bool { return c.progressive }

// Deadline returns the global collection deadline.
func (c *Config) Deadline() time.Duration { return c.deadline }

// AdapterTimeout returns the per-adapter timeout.
func (c *Config) AdapterTimeout() time.Duration { return c.adapterTimeout }

// BarWidth returns the number of cells inside a usage bar.
func (c *Config) BarWidth() int { return c.barWidth }

// TerminalWidth returns the row width limit. Zero means detect or unlimited.
func (c *Config) TerminalWidth() int { return c.terminalWidth }

// LogoDir returns the user logo directory. A configured directory must be readable.
func (c *Config) LogoDir() string { return c.logoDir }

// Logo returns the logo override name.
func (c *Config) Logo() string { return c.logo }

// Order returns a copy of the display order.
func (c *Config) Order() []fact.Kind { return slices.Clone(c.order) }

// Theme returns a copy of the theme overrides keyed by role.
func (c *Config) Theme() map[string]string { return maps.Clone(c.theme) }

// EnabledKinds returns the display order without the kinds switched off.
func (c *Config) EnabledKinds() []fact.Kind {
	out := make([]fact.Kind, 0, len(c.order))
	for _, k := range c.order {
		switch {
		case k == fact.KindGPU && !c.showGPU,
			k == fact.KindBootloader && !c.showBootloader,
			k == fact.KindBattery && !c.showBattery:
			continue
		}
		out = append(out, k)
	}
	return out
}

// Validate checks the settings and returns the first problem found.
func (c *Config) Validate() error {
	if !slices.Contains(ColorModes, c.color) {
		return invalid("color", fmt.Sprintf("invalid color mode %q (must be auto, always or never)", c.color))
	}
	if c.deadline <= 0 {
		return invalid("deadline", "deadline must be positive")
	}
	if c.adapterTimeout <= 0 {
		return invalid("adapter-timeout", "adapter timeout must be positive")
	}
	if c.barWidth < 1 || c.barWidth > maxBarWidth {
		return invalid("bar-width", fmt.Sprintf("bar width must be between 1 and %d", maxBarWidth))
	}
	if c.terminalWidth < 0 {
		return invalid("width", "width cannot be negative")
	}
	if len(c.order) == 0 {
		return invalid("order", "order cannot be empty")
	}
	seen := make(map[fact.Kind]bool, len(c.order))
	for _, k := range c.order {
		if !k.IsValid() {
			return invalid("order", fmt.Sprintf("unknown fact kind %q", k))
		}
		if seen[k] {
			return invalid("order", fmt.Sprintf("fact kind %q listed twice", k))
		}
		seen[k] = true
	}
	if _, err := render.DefaultTheme.Merge(c.theme); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid theme", err,
			map[string]any{"key": "theme"})
	}
	return nil
}

func invalid(key, msg string) error {
	return errors.NewWithContext(errors.ErrCodeInvalidConfig, msg, map[string]any{"key": key})
}

// WithColor sets the color mode.
func WithColor(mode ColorMode) Option {
	return func(c *Config) {
		c.color = mode
	}
}

// WithGPU enables or disables the GPU fact.
func WithGPU(enabled bool) Option {
	return func(c *Config) {
		c.showGPU = enabled
	}
}

// WithBootloader enables or disables the bootloader fact.
func WithBootloader(enabled bool) Option {
	return func(c *Config) {
		c.showBootloader = enabled
	}
}

// WithBattery enables or disables the battery fact.
func WithBattery(enabled bool) Option {
	return func(c *Config) {
		c.showBattery = enabled
	}
}

// WithCPUTemp enables the CPU temperature suffix.
func WithCPUTemp(enabled bool) Option {
	return func(c *Config) {
		c.showCPUTemp = enabled
	}
}

// WithGPUTemp enables the GPU temperature suffix.
func WithGPUTemp(enabled bool) Option {
	return func(c *Config) {
		c.showGPUTemp = enabled
	}
}

// WithDisksDetailed enables one row per mounted filesystem.
func WithDisksDetailed(enabled bool) Option {
	return func(c *Config) {
		c.showDisksDetailed = enabled
	}
}

// WithIcons enables the distro glyph in front of the OS value.
func WithIcons(enabled bool) Option {
	return func(c *Config) {
		c.showIcons = enabled
	}
}

// WithCache enables or disables the fact cache.
func WithCache(enabled bool) Option {
	return func(c *Config) {
		c.cacheEnabled = enabled
	}
}

// WithCachePath overrides the cache file location.
func WithCachePath(path string) Option {
	return func(c *Config) {
		c.cachePath = path
	}
}

// WithProgressive enables redrawing while facts arrive.
func WithProgressive(enabled bool) Option {
	return func(c *Config) {
		c.progressive = enabled
	}
}

// WithDeadline sets the global collection deadline.
func WithDeadline(d time.Duration) Option {
	return func(c *Config) {
		c.deadline = d
	}
}

// WithAdapterTimeout sets the per-adapter timeout.
func WithAdapterTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.adapterTimeout = d
	}
}

// WithBarWidth sets the number of cells inside a usage bar.
func WithBarWidth(w int) Option {
	return func(c *Config) {
		c.barWidth = w
	}
}

// WithTerminalWidth limits the row width. Zero detects the terminal.
func WithTerminalWidth(w int) Option {
	return func(c *Config) {
		c.terminalWidth = w
	}
}

// WithLogoDir sets the user logo directory.
func WithLogoDir(dir string) Option {
	return func(c *Config) {
		c.logoDir = dir
	}
}

// WithLogo names the logo to use instead of the detected one.
func WithLogo(name string) Option {
	return func(c *Config) {
		c.logo = name
	}
}

// WithOrder sets the display order. Kinds left out are not collected.
func WithOrder(kinds ...fact.Kind) Option {
	return func(c *Config) {
		c.order = slices.Clone(kinds)
	}
}

// WithTheme merges color overrides keyed by role name.
func WithTheme(theme map[string]string) Option {
	return func(c *Config) {
		maps.Copy(c.theme, theme)
	}
}
