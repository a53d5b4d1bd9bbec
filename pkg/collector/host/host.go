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

package host

import (
	"context"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// Product identifies the machine model.
type Product struct {
	Vendor  string
	Name    string
	Version string
}

// placeholders are firmware defaults that carry no information.
var placeholders = []string{
	"to be filled by o.e.m.",
	"system product name",
	"system manufacturer",
	"system version",
	"default string",
	"not applicable",
	"not specified",
	"none",
	"o.e.m.",
	"0",
	"x.x",
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range placeholders {
		if strings.EqualFold(s, p) {
			return ""
		}
	}
	return s
}

// String joins the non-placeholder fields. The vendor is dropped when the
// name already starts with it.
func (p Product) String() string {
	vendor, name, version := clean(p.Vendor), clean(p.Name), clean(p.Version)
	if name == "" {
		return ""
	}
	parts := make([]string, 0, 3)
	if vendor != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(vendor)) {
		parts = append(parts, vendor)
	}
	parts = append(parts, name)
	if version != "" && !strings.Contains(name, version) {
		parts = append(parts, version)
	}
	return strings.Join(parts, " ")
}

func fromProduct(p Product) fact.Fact {
	value := p.String()
	if value == "" {
		return fact.Unavailable(fact.KindHost, "product unknown")
	}
	f := fact.New(fact.KindHost, value)
	if v := clean(p.Vendor); v != "" {
		f = f.WithDetail("vendor", v)
	}
	return f
}

// DMICollector reads the SMBIOS product fields on Linux.
type DMICollector struct {
	product func() Product
}

// NewDMICollector returns a collector backed by the system DMI tables.
func NewDMICollector() *DMICollector {
	return &DMICollector{product: systemProduct}
}

// WithProduct overrides the product source.
func (c *DMICollector) WithProduct(fn func() Product) *DMICollector {
	c.product = fn
	return c
}

// Collect implements the collector contract for fact.KindHost.
func (c *DMICollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindHost, err)
	}
	return fromProduct(c.product())
}

// SysctlCollector reads the model through sysctl on macOS, OpenBSD and
// NetBSD, and through kenv on FreeBSD.
type SysctlCollector struct {
	runner *command.Runner
}

// NewSysctlCollector returns a sysctl based collector.
func NewSysctlCollector(runner *command.Runner) *SysctlCollector {
	return &SysctlCollector{runner: runner}
}

// Collect implements the collector contract for fact.KindHost.
func (c *SysctlCollector) Collect(ctx context.Context, p platform.Profile) fact.Fact {
	var (
		product Product
		err     error
	)
	switch p.Family {
	case platform.FamilyMacOS:
		product.Name, err = c.runner.Output(ctx, "sysctl", "-n", "hw.model")
	case platform.FamilyFreeBSD:
		product.Vendor, _ = c.runner.Output(ctx, "kenv", "-q", "smbios.system.maker")
		product.Name, err = c.runner.Output(ctx, "kenv", "-q", "smbios.system.product")
	default:
		var lines []string
		lines, err = c.runner.Lines(ctx, "sysctl", "-n", "hw.vendor", "hw.product")
		if err == nil && len(lines) != 2 {
			err = errors.NewWithContext(errors.ErrCodeSourceParse, "unexpected sysctl output",
				map[string]any{"lines": len(lines)})
		}
		if err == nil {
			product = Product{Vendor: lines[0], Name: lines[1]}
		}
	}
	if err != nil {
		return fact.FromError(fact.KindHost, err)
	}
	return fromProduct(product)
}
