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

package bootloader

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// Signature names a boot loader and the paths that identify it.
type Signature struct {
	Name     string
	Patterns []string
}

// Signatures in match priority order.
var Signatures = []Signature{
	{Name: "Limine", Patterns: []string{
		"boot/limine.{conf,cfg}",
		"boot/limine/limine.{conf,cfg}",
		"{boot,efi,boot/efi}/EFI/{BOOT,limine}/limine.{conf,cfg}",
	}},
	{Name: "GRUB", Patterns: []string{
		"boot/grub/grub.cfg",
		"boot/grub2/grub.cfg",
		"{boot,efi,boot/efi}/EFI/*/grub.cfg",
	}},
	{Name: "systemd-boot", Patterns: []string{
		"{boot,efi,boot/efi}/loader/loader.conf",
		"{boot,efi,boot/efi}/EFI/systemd/systemd-boot*.efi",
	}},
	{Name: "rEFInd", Patterns: []string{
		"{boot,efi,boot/efi}/EFI/refind/refind.conf",
	}},
	{Name: "syslinux", Patterns: []string{
		"boot/syslinux/syslinux.cfg",
		"boot/syslinux.cfg",
		"boot/extlinux/extlinux.conf",
	}},
	{Name: "LILO", Patterns: []string{
		"etc/lilo.conf",
	}},
	{Name: "BSD loader", Patterns: []string{
		"boot/loader.conf",
		"boot/loader.efi",
	}},
}

// Collector matches the signatures against a filesystem.
type Collector struct {
	fsys       fs.FS
	signatures []Signature
}

// NewCollector returns a collector probing fsys, the host root.
func NewCollector(fsys fs.FS) *Collector {
	return &Collector{fsys: fsys, signatures: Signatures}
}

// Match returns the first signature with an existing path and that path.
func (c *Collector) Match(ctx context.Context) (Signature, string, bool) {
	for _, sig := range c.signatures {
		for _, pattern := range sig.Patterns {
			if ctx.Err() != nil {
				return Signature{}, "", false
			}
			matches, err := doublestar.Glob(c.fsys, pattern)
			if err != nil {
				slog.Debug("invalid bootloader pattern", slog.String("pattern", pattern), slog.String("error", err.Error()))
				continue
			}
			if len(matches) > 0 {
				return sig, "/" + matches[0], true
			}
		}
	}
	return Signature{}, "", false
}

// Collect implements the collector contract for fact.KindBootloader.
func (c *Collector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	sig, path, ok := c.Match(ctx)
	if err := ctx.Err(); err != nil {
		return fact.FromError(fact.KindBootloader, err)
	}
	if !ok {
		return fact.Unavailable(fact.KindBootloader, "no known bootloader")
	}
	return fact.New(fact.KindBootloader, sig.Name).WithDetail("path", path)
}
