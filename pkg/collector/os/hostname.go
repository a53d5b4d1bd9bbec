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

package os

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

var hostnamePaths = []string{
	"/proc/sys/kernel/hostname",
	"/etc/hostname",
}

// HostnameCollector reports the host name.
type HostnameCollector struct {
	parser   *file.Parser
	hostname func() (string, error)
}

// NewHostnameCollector returns a hostname collector reading through parser.
// A nil hostname function uses os.Hostname.
func NewHostnameCollector(parser *file.Parser, hostname func() (string, error)) *HostnameCollector {
	if hostname == nil {
		hostname = os.Hostname
	}
	return &HostnameCollector{parser: parser, hostname: hostname}
}

// Collect implements the collector contract for fact.KindHostname.
func (c *HostnameCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindHostname, err)
	}

	for _, path := range hostnamePaths {
		name, err := c.parser.GetString(path)
		if err == nil {
			return fact.New(fact.KindHostname, name)
		}
		slog.Debug("hostname source skipped", slog.String("path", path), slog.String("error", err.Error()))
	}

	name, err := c.hostname()
	if err != nil || name == "" {
		return fact.FromError(fact.KindHostname,
			errors.Wrap(errors.ErrCodeSourceUnavailable, "hostname unknown", err))
	}
	return fact.New(fact.KindHostname, name)
}
