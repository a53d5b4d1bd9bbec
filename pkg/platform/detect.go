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

package platform

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/collector/file"
	"github.com/NVIDIA/hostfetch/pkg/defaults"
)

// Uname holds the fields of uname(2) the profile needs.
type Uname struct {
	Sysname string
	Release string
	Machine string
}

var (
	osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}
	lsbReleasePath = "/etc/lsb-release"
	kernelRelease  = "/proc/sys/kernel/osrelease"

	fileSources = []Source{SourceProc, SourcePowerSupply, SourceDRM, SourceBoot, SourceEFI}

	// ProbedCommands are looked up on PATH once during detection.
	ProbedCommands = []string{
		"nvidia-smi", "lspci", "sysctl", "system_profiler", "pmset", "sw_vers",
		"dpkg-query", "rpm", "pacman", "apk", "xbps-query", "flatpak", "snap",
		"brew", "pkg", "pkg_info", "nix-env",
	}
)

// Option configures detection.
type Option func(*detector)

type detector struct {
	goos   string
	arch   string
	fsys   fs.FS
	runner *command.Runner
	uname  func() (Uname, error)
}

// WithGOOS overrides runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(d *detector) {
		d.goos = goos
	}
}

// WithArch overrides the architecture reported when uname is unavailable.
func WithArch(arch string) Option {
	return func(d *detector) {
		d.arch = arch
	}
}

// WithFS sets the root filesystem probed for files.
func WithFS(fsys fs.FS) Option {
	return func(d *detector) {
		d.fsys = fsys
	}
}

// WithRunner sets the command runner used for PATH lookups and sw_vers.
func WithRunner(r *command.Runner) Option {
	return func(d *detector) {
		d.runner = r
	}
}

// WithUname replaces the uname(2) call.
func WithUname(fn func() (Uname, error)) Option {
	return func(d *detector) {
		d.uname = fn
	}
}

// Detect resolves the host profile. It never fails.
func Detect(ctx context.Context, opts ...Option) Profile {
	d := &detector{
		goos:  runtime.GOOS,
		arch:  runtime.GOARCH,
		fsys:  os.DirFS("/"),
		uname: systemUname,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runner == nil {
		d.runner = command.NewRunner(command.WithTimeout(defaults.ProfileProbeTimeout))
	}

	p := Profile{
		Family: FamilyFromGOOS(d.goos),
		Arch:   d.arch,
	}

	parser := file.NewParser(file.WithFS(d.fsys))
	u, unameErr := d.uname()
	if unameErr != nil {
		slog.Debug("uname unavailable", slog.String("error", unameErr.Error()))
	} else if u.Machine != "" {
		p.Arch = u.Machine
	}
	p.KernelName = u.Sysname

	switch p.Family {
	case FamilyLinux:
		d.linuxDistro(parser, &p)
		if release, err := parser.GetString(kernelRelease); err == nil {
			p.KernelVersion = release
		}
		if p.KernelName == "" {
			p.KernelName = "Linux"
		}
	case FamilyMacOS:
		d.macDistro(ctx, &p)
	case FamilyFreeBSD, FamilyOpenBSD, FamilyNetBSD:
		if unameErr == nil && u.Sysname != "" {
			p.Distro = strings.ToLower(u.Sysname)
			p.DistroName = strings.TrimSpace(u.Sysname + " " + u.Release)
			p.DistroVersion = u.Release
		}
	}

	if p.KernelVersion == "" && unameErr == nil {
		p.KernelVersion = u.Release
	}

	p.Sources = d.sources(parser)

	slog.Debug("platform detected",
		slog.String("family", p.Family.String()),
		slog.String("distro", p.Distro),
		slog.String("kernel", p.KernelVersion),
		slog.Int("sources", len(p.Sources)))

	return p
}

func (d *detector) linuxDistro(parser *file.Parser, p *Profile) {
	kvParser := file.NewParser(
		file.WithFS(parser.FS()),
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)

	for _, path := range osReleasePaths {
		kv, err := kvParser.GetMap(path)
		if err != nil {
			continue
		}
		id := strings.ToLower(kv["ID"])
		name := kv["PRETTY_NAME"]
		if name == "" {
			name = strings.TrimSpace(kv["NAME"] + " " + kv["VERSION"])
		}
		if id == "" && name == "" {
			continue
		}
		p.Distro = id
		p.DistroName = name
		p.DistroVersion = kv["VERSION_ID"]
		if like := kv["ID_LIKE"]; like != "" {
			p.DistroLike = strings.Fields(strings.ToLower(like))
		}
		return
	}

	kv, err := kvParser.GetMap(lsbReleasePath)
	if err != nil {
		slog.Debug("no distribution release file found")
		return
	}
	p.Distro = strings.ToLower(kv["DISTRIB_ID"])
	p.DistroName = kv["DISTRIB_DESCRIPTION"]
	p.DistroVersion = kv["DISTRIB_RELEASE"]
	if p.DistroName == "" {
		p.DistroName = strings.TrimSpace(kv["DISTRIB_ID"] + " " + kv["DISTRIB_RELEASE"])
	}
}

// macDistro reads sw_vers output:
//
//	ProductName:		macOS
//	ProductVersion:		14.1
//	BuildVersion:		23B74
func (d *detector) macDistro(ctx context.Context, p *Profile) {
	p.Distro = "macos"
	p.DistroName = "macOS"

	lines, err := d.runner.Lines(ctx, "sw_vers")
	if err != nil {
		slog.Debug("sw_vers failed", slog.String("error", err.Error()))
		return
	}

	var name, version string
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ProductName":
			name = strings.TrimSpace(value)
		case "ProductVersion":
			version = strings.TrimSpace(value)
		}
	}
	if name != "" {
		p.DistroName = strings.TrimSpace(name + " " + version)
	}
	p.DistroVersion = version
}

func (d *detector) sources(parser *file.Parser) []Source {
	var found []Source
	for _, s := range fileSources {
		if parser.Exists(string(s)) {
			found = append(found, s)
		}
	}
	for _, name := range ProbedCommands {
		if d.runner.Available(name) {
			found = append(found, CommandSource(name))
		}
	}
	slices.Sort(found)
	return found
}
