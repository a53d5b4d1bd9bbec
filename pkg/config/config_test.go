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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, ColorAuto, cfg.Color())
	assert.True(t, cfg.ShowGPU())
	assert.True(t, cfg.ShowBootloader())
	assert.True(t, cfg.ShowBattery())
	assert.False(t, cfg.ShowCPUTemp())
	assert.False(t, cfg.ShowGPUTemp())
	assert.False(t, cfg.ShowDisksDetailed())
	assert.False(t, cfg.ShowIcons())
	assert.True(t, cfg.CacheEnabled())
	assert.False(t, cfg.Progressive())
	assert.Equal(t, defaults.CollectionDeadline, cfg.Deadline())
	assert.Equal(t, defaults.AdapterTimeout, cfg.AdapterTimeout())
	assert.Equal(t, defaults.BarWidth, cfg.BarWidth())
	assert.Zero(t, cfg.TerminalWidth())
	assert.Equal(t, fact.Kinds, cfg.Order())
	assert.Empty(t, cfg.Theme())
	assert.NoError(t, cfg.Validate())
}

func TestConfigImmutability(t *testing.T) {
	theme := map[string]string{"label": "35"}
	cfg := NewConfig(WithTheme(theme), WithOrder(fact.KindCPU))

	theme["label"] = "31"
	got := cfg.Theme()
	got["value"] = "1"
	order := cfg.Order()
	order[0] = fact.KindGPU

	assert.Equal(t, map[string]string{"label": "35"}, cfg.Theme())
	assert.Equal(t, []fact.Kind{fact.KindCPU}, cfg.Order())
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		mode ColorMode
		tty  bool
		want bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorAlways, false, true},
		{ColorNever, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, NewConfig(WithColor(tt.mode)).UseColor(tt.tty))
		})
	}
}

func TestEnabledKinds(t *testing.T) {
	cfg := NewConfig(
		WithOrder(fact.KindCPU, fact.KindGPU, fact.KindBattery, fact.KindBootloader, fact.KindMemory),
		WithGPU(false),
		WithBattery(false),
	)
	assert.Equal(t, []fact.Kind{fact.KindCPU, fact.KindBootloader, fact.KindMemory}, cfg.EnabledKinds())

	cfg = NewConfig(WithBootloader(false))
	assert.NotContains(t, cfg.EnabledKinds(), fact.KindBootloader)
	assert.Len(t, cfg.EnabledKinds(), len(fact.Kinds)-1)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		key     string
	}{
		{name: "valid default config", config: NewConfig()},
		{name: "bad color", config: NewConfig(WithColor("rainbow")), wantErr: true, key: KeyColor},
		{name: "zero deadline", config: NewConfig(WithDeadline(0)), wantErr: true, key: KeyDeadline},
		{name: "negative adapter timeout", config: NewConfig(WithAdapterTimeout(-time.Second)), wantErr: true, key: KeyAdapterTimeout},
		{name: "bar too narrow", config: NewConfig(WithBarWidth(0)), wantErr: true, key: KeyBarWidth},
		{name: "bar too wide", config: NewConfig(WithBarWidth(maxBarWidth + 1)), wantErr: true, key: KeyBarWidth},
		{name: "negative width", config: NewConfig(WithTerminalWidth(-1)), wantErr: true, key: KeyWidth},
		{name: "empty order", config: NewConfig(WithOrder()), wantErr: true, key: KeyOrder},
		{name: "unknown kind", config: NewConfig(WithOrder("weather")), wantErr: true, key: KeyOrder},
		{name: "duplicate kind", config: NewConfig(WithOrder(fact.KindCPU, fact.KindCPU)), wantErr: true, key: KeyOrder},
		{name: "bad theme role", config: NewConfig(WithTheme(map[string]string{"sparkle": "1"})), wantErr: true, key: KeyTheme},
		{name: "bad theme code", config: NewConfig(WithTheme(map[string]string{"label": "red"})), wantErr: true, key: KeyTheme},
		{name: "good theme", config: NewConfig(WithTheme(map[string]string{"label": "1;35"}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.key, se.Context["key"])
		})
	}
}
