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
	"os"
	"path/filepath"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ShellCollector reports the login shell from $SHELL.
type ShellCollector struct {
	getenv func(string) string
}

// NewShellCollector returns a shell collector. A nil getenv uses os.Getenv.
func NewShellCollector(getenv func(string) string) *ShellCollector {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &ShellCollector{getenv: getenv}
}

// Collect implements the collector contract for fact.KindShell.
func (c *ShellCollector) Collect(_ context.Context, _ platform.Profile) fact.Fact {
	shell := c.getenv("SHELL")
	if shell == "" {
		return fact.Unavailable(fact.KindShell, "SHELL not set")
	}
	return fact.New(fact.KindShell, filepath.Base(shell)).WithDetail("path", shell)
}
