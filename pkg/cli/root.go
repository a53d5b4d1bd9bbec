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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostfetch/pkg/logging"
)

const (
	name           = "hostfetch"
	versionDefault = "dev"

	// defaultLogLevel keeps stderr quiet unless something is wrong.
	defaultLogLevel = "warn"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// NewCommand returns the root command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Show host information next to the distribution logo",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags:                 rootFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String(flagLogLevel))
			return ctx, nil
		},
		Action: runReport,
		Commands: []*cli.Command{
			cacheCmd(),
		},
	}
}

// Execute runs the root command with os.Args and exits non-zero on error.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		cancel()
		os.Exit(1)
	}
}

// initLogger installs the default logger. The flag wins over LOG_LEVEL and
// the fallback is warn so stdout stays the only visible output.
func initLogger(level string) {
	if level == "" {
		level = os.Getenv(logging.EnvLogLevel)
	}
	if level == "" {
		level = defaultLogLevel
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
}
