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

package desktop

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/prometheus/procfs"

	"github.com/NVIDIA/hostfetch/pkg/collector/command"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// QuartzCompositor is the window manager reported on macOS.
const QuartzCompositor = "Quartz Compositor"

// WindowManager maps a process name to its display name.
type WindowManager struct {
	Process string
	Name    string
}

// WindowManagers in match priority order. Compositors that also run an
// X server come before generic names so the compositor is reported.
var WindowManagers = []WindowManager{
	{Process: "hyprland", Name: "Hyprland"},
	{Process: "sway", Name: "Sway"},
	{Process: "niri", Name: "niri"},
	{Process: "river", Name: "River"},
	{Process: "wayfire", Name: "Wayfire"},
	{Process: "labwc", Name: "labwc"},
	{Process: "kwin_wayland", Name: "KWin"},
	{Process: "kwin_x11", Name: "KWin"},
	{Process: "gnome-shell", Name: "Mutter"},
	{Process: "mutter", Name: "Mutter"},
	{Process: "cinnamon", Name: "Muffin"},
	{Process: "muffin", Name: "Muffin"},
	{Process: "xfwm4", Name: "Xfwm4"},
	{Process: "marco", Name: "Marco"},
	{Process: "openbox", Name: "Openbox"},
	{Process: "i3", Name: "i3"},
	{Process: "bspwm", Name: "bspwm"},
	{Process: "awesome", Name: "awesome"},
	{Process: "dwm", Name: "dwm"},
	{Process: "xmonad", Name: "xmonad"},
	{Process: "qtile", Name: "Qtile"},
	{Process: "herbstluftwm", Name: "herbstluftwm"},
	{Process: "fluxbox", Name: "Fluxbox"},
	{Process: "icewm", Name: "IceWM"},
	{Process: "enlightenment", Name: "Enlightenment"},
	{Process: "fvwm", Name: "FVWM"},
	{Process: "weston", Name: "Weston"},
	{Process: "metacity", Name: "Metacity"},
	{Process: "compiz", Name: "Compiz"},
}

// Match returns the highest priority window manager among process names.
func Match(processes []string) (WindowManager, bool) {
	running := make(map[string]bool, len(processes))
	for _, p := range processes {
		running[strings.ToLower(path.Base(strings.TrimSpace(p)))] = true
	}
	for _, wm := range WindowManagers {
		if running[wm.Process] {
			return wm, true
		}
	}
	return WindowManager{}, false
}

func fromProcesses(processes []string) fact.Fact {
	wm, ok := Match(processes)
	if !ok {
		return fact.Unavailable(fact.KindWindowManager, "no window manager")
	}
	return fact.New(fact.KindWindowManager, wm.Name).WithDetail("process", wm.Process)
}

// ProcCollector lists process names from the proc filesystem.
type ProcCollector struct {
	procRoot string
}

// NewProcCollector returns a collector scanning procRoot.
func NewProcCollector(procRoot string) *ProcCollector {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	return &ProcCollector{procRoot: procRoot}
}

// Collect implements the collector contract for fact.KindWindowManager.
func (c *ProcCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	fs, err := procfs.NewFS(c.procRoot)
	if err != nil {
		return fact.FromError(fact.KindWindowManager, errors.Wrap(errors.ErrCodeSourceUnavailable, "procfs unavailable", err))
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return fact.FromError(fact.KindWindowManager, errors.Wrap(errors.ErrCodeSourceUnavailable, "process list unavailable", err))
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return fact.FromError(fact.KindWindowManager, err)
		}
		comm, err := p.Comm()
		if err != nil {
			// processes exit while being listed
			slog.Debug("skipping process", slog.Int("pid", p.PID), slog.String("error", err.Error()))
			continue
		}
		names = append(names, comm)
	}
	return fromProcesses(names)
}

// PsCollector lists process names with ps on the BSDs.
type PsCollector struct {
	runner *command.Runner
}

// NewPsCollector returns a ps based collector.
func NewPsCollector(runner *command.Runner) *PsCollector {
	return &PsCollector{runner: runner}
}

// Collect implements the collector contract for fact.KindWindowManager.
func (c *PsCollector) Collect(ctx context.Context, _ platform.Profile) fact.Fact {
	names, err := c.runner.Lines(ctx, "ps", "-ax", "-o", "comm=")
	if err != nil {
		return fact.FromError(fact.KindWindowManager, err)
	}
	return fromProcesses(names)
}

// QuartzCollector reports the macOS compositor.
type QuartzCollector struct{}

// Collect implements the collector contract for fact.KindWindowManager.
func (QuartzCollector) Collect(context.Context, platform.Profile) fact.Fact {
	return fact.New(fact.KindWindowManager, QuartzCompositor)
}
