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
	"fmt"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/coreos/go-systemd/v22/util"

	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

const pid1Comm = "/proc/1/comm"

// Collector reports the init system. On systemd hosts the manager version
// is read over D-Bus; elsewhere the name of PID 1 is used.
type Collector struct {
	parser  *file.Parser
	running func() bool
	version func(ctx context.Context) (string, error)
}

// Option configures the Collector.
type Option func(*Collector)

// WithParser sets the parser used for /proc/1/comm.
func WithParser(p *file.Parser) Option {
	return func(c *Collector) {
		c.parser = p
	}
}

// WithManager replaces the systemd detection and version query.
func WithManager(running func() bool, version func(ctx context.Context) (string, error)) Option {
	return func(c *Collector) {
		c.running = running
		c.version = version
	}
}

// NewCollector returns an init collector using the system D-Bus.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		parser:  file.NewParser(),
		running: util.IsRunningSystemd,
		version: managerVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect implements the collector contract for fact.KindInit.
func (c *Collector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindInit, err)
	}

	if !c.running() {
		comm, err := c.parser.GetString(pid1Comm)
		if err != nil {
			return fact.FromError(fact.KindInit,
				errors.Wrap(errors.ErrCodeSourceUnavailable, "init unknown", err))
		}
		return fact.New(fact.KindInit, comm)
	}

	v, err := c.version(ctx)
	if err != nil {
		slog.Debug("systemd version query failed", slog.String("error", err.Error()))
		return fact.Degraded(fact.KindInit, "systemd", "version unavailable")
	}
	return fact.New(fact.KindInit, "systemd "+v).WithDetail("version", v)
}

func managerVersion(ctx context.Context) (string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	v, err := conn.GetManagerProperty("Version")
	if err != nil {
		return "", fmt.Errorf("failed to get manager version: %w", err)
	}
	return unquote(v), nil
}

// unquote strips the GVariant text quoting of a string property.
func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// LaunchdCollector reports launchd on macOS.
type LaunchdCollector struct{}

// Collect implements the collector contract for fact.KindInit.
func (LaunchdCollector) Collect(_ context.Context, _ platform.Profile) fact.Fact {
	return fact.New(fact.KindInit, "launchd")
}
