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
	"slices"
	"strings"
)

// Family is the operating system family.
type Family string

const (
	FamilyLinux   Family = "linux"
	FamilyFreeBSD Family = "freebsd"
	FamilyOpenBSD Family = "openbsd"
	FamilyNetBSD  Family = "netbsd"
	FamilyMacOS   Family = "macos"
	FamilyUnknown Family = "unknown"
)

// Families lists all known families in a stable order.
var Families = []Family{FamilyLinux, FamilyFreeBSD, FamilyOpenBSD, FamilyNetBSD, FamilyMacOS, FamilyUnknown}

// String returns the family key, also used as the logo fallback key.
func (f Family) String() string {
	return string(f)
}

// IsBSD reports whether the family is one of the BSDs.
func (f Family) IsBSD() bool {
	return f == FamilyFreeBSD || f == FamilyOpenBSD || f == FamilyNetBSD
}

// FamilyFromGOOS maps a runtime.GOOS value to a Family.
func FamilyFromGOOS(goos string) Family {
	switch goos {
	case "linux":
		return FamilyLinux
	case "freebsd":
		return FamilyFreeBSD
	case "openbsd":
		return FamilyOpenBSD
	case "netbsd":
		return FamilyNetBSD
	case "darwin":
		return FamilyMacOS
	default:
		return FamilyUnknown
	}
}

// Source identifies something an adapter can read from.
type Source string

// Well-known file sources.
const (
	SourceProc        Source = "/proc"
	SourcePowerSupply Source = "/sys/class/power_supply"
	SourceDRM         Source = "/sys/class/drm"
	SourceBoot        Source = "/boot"
	SourceEFI         Source = "/sys/firmware/efi"
)

const commandPrefix = "cmd:"

// CommandSource returns the source identifier of a command on PATH.
func CommandSource(name string) Source {
	return Source(commandPrefix + name)
}

// Profile describes the host. It is created once by Detect and only read
// afterwards.
type Profile struct {
	Family        Family   `json:"family" yaml:"family"`
	Distro        string   `json:"distro,omitempty" yaml:"distro,omitempty"`
	DistroName    string   `json:"distroName,omitempty" yaml:"distroName,omitempty"`
	DistroLike    []string `json:"distroLike,omitempty" yaml:"distroLike,omitempty"`
	DistroVersion string   `json:"distroVersion,omitempty" yaml:"distroVersion,omitempty"`
	KernelName    string   `json:"kernelName,omitempty" yaml:"kernelName,omitempty"`
	KernelVersion string   `json:"kernelVersion,omitempty" yaml:"kernelVersion,omitempty"`
	Arch          string   `json:"arch,omitempty" yaml:"arch,omitempty"`

	// Sources is sorted.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Has reports whether the source was found during detection.
func (p Profile) Has(s Source) bool {
	_, ok := slices.BinarySearch(p.Sources, s)
	return ok
}

// HasCommand reports whether the named command was found on PATH.
func (p Profile) HasCommand(name string) bool {
	return p.Has(CommandSource(name))
}

// Commands returns the names of the commands found on PATH.
func (p Profile) Commands() []string {
	var names []string
	for _, s := range p.Sources {
		if name, ok := strings.CutPrefix(string(s), commandPrefix); ok {
			names = append(names, name)
		}
	}
	return names
}

// DisplayName returns the human-readable OS name, falling back to the
// distro ID and then the family.
func (p Profile) DisplayName() string {
	switch {
	case p.DistroName != "":
		return p.DistroName
	case p.Distro != "":
		return p.Distro
	default:
		return p.Family.String()
	}
}
