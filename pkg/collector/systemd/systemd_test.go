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

package systemd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

func TestCollect_Systemd(t *testing.T) {
	c := NewCollector(WithManager(
		func() bool { return true },
		func(context.Context) (string, error) { return "255.4-1ubuntu8", nil },
	))

	f := c.Collect(context.Background(), platform.Profile{Family: platform.FamilyLinux})
	assert.True(t, f.IsOK())
	assert.Equal(t, "systemd 255.4-1ubuntu8", f.Value)
	assert.Equal(t, "255.4-1ubuntu8", f.Details["version"])
}

func TestCollect_SystemdVersionFails(t *testing.T) {
	c := NewCollector(WithManager(
		func() bool { return true },
		func(context.Context) (string, error) { return "", errors.New("no bus") },
	))

	f := c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsDegraded())
	assert.Equal(t, "systemd", f.Value)
}

func TestCollect_OtherInit(t *testing.T) {
	parser := file.NewParser(file.WithFS(fstest.MapFS{
		"proc/1/comm": {Data: []byte("runit\n")},
	}))
	c := NewCollector(WithParser(parser), WithManager(func() bool { return false }, nil))

	f := c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsOK())
	assert.Equal(t, "runit", f.Value)
}

func TestCollect_Unknown(t *testing.T) {
	parser := file.NewParser(file.WithFS(fstest.MapFS{}))
	c := NewCollector(WithParser(parser), WithManager(func() bool { return false }, nil))

	f := c.Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
	assert.Equal(t, "init unknown", f.Status.Reason)
	assert.Empty(t, f.Value)
}

func TestCollect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewCollector().Collect(ctx, platform.Profile{})
	assert.Equal(t, fact.StateUnavailable, f.Status.State)
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "255", unquote(`"255"`))
	assert.Equal(t, "255", unquote(`'255'`))
	assert.Equal(t, "255", unquote("255"))
	assert.Equal(t, `"`, unquote(`"`))
}

func TestLaunchd(t *testing.T) {
	f := LaunchdCollector{}.Collect(context.Background(), platform.Profile{Family: platform.FamilyMacOS})
	assert.Equal(t, "launchd", f.Value)
}
