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

package network

import (
	"context"
	"fmt"
	"net/netip"
	"slices"

	"github.com/shirou/gopsutil/v4/net"

	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

const (
	flagUp       = "up"
	flagLoopback = "loopback"
)

// Collector picks the first usable interface in the order the platform
// reports them.
type Collector struct {
	interfaces func(ctx context.Context) (net.InterfaceStatList, error)
}

// Option configures a Collector.
type Option func(*Collector)

// WithInterfaces overrides the interface source.
func WithInterfaces(fn func(ctx context.Context) (net.InterfaceStatList, error)) Option {
	return func(c *Collector) {
		c.interfaces = fn
	}
}

// NewCollector returns a gopsutil backed network collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{interfaces: net.InterfacesWithContext}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect implements the collector contract for fact.KindNetwork.
func (c *Collector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	list, err := c.interfaces(ctx)
	if err != nil {
		return fact.FromError(fact.KindNetwork, errors.Wrap(errors.ErrCodeSourceUnavailable, "interfaces unknown", err))
	}

	for _, iface := range list {
		if !slices.Contains(iface.Flags, flagUp) || slices.Contains(iface.Flags, flagLoopback) {
			continue
		}
		addr, ok := Preferred(iface.Addrs)
		if !ok {
			continue
		}
		f := fact.New(fact.KindNetwork, fmt.Sprintf("%s: %s", iface.Name, addr)).
			WithDetail("interface", iface.Name)
		if iface.HardwareAddr != "" {
			f = f.WithDetail("mac", iface.HardwareAddr)
		}
		return f
	}
	return fact.Unavailable(fact.KindNetwork, "no connected interface")
}

// Preferred returns the first IPv4 address, else the first global IPv6
// address. Link-local and unparseable addresses are ignored.
func Preferred(addrs net.InterfaceAddrList) (string, bool) {
	var v6 string
	for _, a := range addrs {
		p, err := netip.ParsePrefix(a.Addr)
		if err != nil {
			continue
		}
		ip := p.Addr()
		if ip.IsLinkLocalUnicast() || ip.IsLoopback() {
			continue
		}
		if ip.Is4() || ip.Is4In6() {
			return a.Addr, true
		}
		if v6 == "" {
			v6 = a.Addr
		}
	}
	return v6, v6 != ""
}
