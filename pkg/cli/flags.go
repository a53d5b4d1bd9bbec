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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostfetch/pkg/config"
	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/serializer"
)

const (
	flagConfig   = "config"
	flagEnvFile  = "env-file"
	flagLogLevel = "log-level"
	flagFormat   = "format"
	flagOutput   = "output"
)

func envVars(key string) cli.ValueSourceChain {
	return cli.EnvVars(config.EnvName(key))
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "Config file (default: " + config.DefaultPath() + ")",
			Sources: cli.EnvVars(config.EnvPrefix + "CONFIG"),
		},
		&cli.StringFlag{
			Name:    flagEnvFile,
			Usage:   "Env file with HOSTFETCH_* settings",
			Sources: cli.EnvVars(config.EnvPrefix + "ENV_FILE"),
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "Log level on stderr (debug, info, warn, error, off)",
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Usage:   "Print the snapshot instead of the report: " + strings.Join(serializer.SupportedFormats(), ", "),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "Snapshot output file (default: stdout)",
		},
		&cli.StringFlag{
			Name:    config.KeyColor,
			Usage:   "Color output: auto, always, never",
			Value:   string(config.ColorAuto),
			Sources: envVars(config.KeyColor),
		},
		&cli.BoolFlag{
			Name:    config.KeyGPU,
			Usage:   "Collect the GPU fact",
			Value:   true,
			Sources: envVars(config.KeyGPU),
		},
		&cli.BoolFlag{
			Name:    config.KeyBootloader,
			Usage:   "Collect the bootloader fact",
			Value:   true,
			Sources: envVars(config.KeyBootloader),
		},
		&cli.BoolFlag{
			Name:    config.KeyBattery,
			Usage:   "Collect the battery fact",
			Value:   true,
			Sources: envVars(config.KeyBattery),
		},
		&cli.BoolFlag{
			Name:    config.KeyCPUTemp,
			Usage:   "Append the CPU temperature",
			Sources: envVars(config.KeyCPUTemp),
		},
		&cli.BoolFlag{
			Name:    config.KeyGPUTemp,
			Usage:   "Append the GPU temperature",
			Sources: envVars(config.KeyGPUTemp),
		},
		&cli.BoolFlag{
			Name:    config.KeyDisksDetailed,
			Usage:   "Show one row per mounted filesystem",
			Sources: envVars(config.KeyDisksDetailed),
		},
		&cli.BoolFlag{
			Name:    config.KeyIcons,
			Usage:   "Prefix the OS with a distribution glyph (needs a Nerd Font)",
			Sources: envVars(config.KeyIcons),
		},
		&cli.BoolFlag{
			Name:    config.KeyCache,
			Usage:   "Reuse slow-changing facts from the cache",
			Value:   true,
			Sources: envVars(config.KeyCache),
		},
		&cli.StringFlag{
			Name:    config.KeyCachePath,
			Usage:   "Cache file location",
			Sources: envVars(config.KeyCachePath),
		},
		&cli.BoolFlag{
			Name:    config.KeyProgressive,
			Usage:   "Redraw the report while facts arrive",
			Sources: envVars(config.KeyProgressive),
		},
		&cli.DurationFlag{
			Name:    config.KeyDeadline,
			Usage:   "Global collection deadline",
			Value:   defaults.CollectionDeadline,
			Sources: envVars(config.KeyDeadline),
		},
		&cli.DurationFlag{
			Name:    config.KeyAdapterTimeout,
			Usage:   "Timeout of a single fact source",
			Value:   defaults.AdapterTimeout,
			Sources: envVars(config.KeyAdapterTimeout),
		},
		&cli.IntFlag{
			Name:    config.KeyBarWidth,
			Usage:   "Cells inside a usage bar",
			Value:   defaults.BarWidth,
			Sources: envVars(config.KeyBarWidth),
		},
		&cli.IntFlag{
			Name:    config.KeyWidth,
			Usage:   "Truncate rows to this many cells (default: terminal width)",
			Sources: envVars(config.KeyWidth),
		},
		&cli.StringFlag{
			Name:    config.KeyLogoDir,
			Usage:   "Directory of <name>.txt logos; must be readable when set",
			Sources: envVars(config.KeyLogoDir),
		},
		&cli.StringFlag{
			Name:    config.KeyLogo,
			Aliases: []string{"l"},
			Usage:   "Logo name to use instead of the detected one, or \"none\"",
			Sources: envVars(config.KeyLogo),
		},
		&cli.StringSliceFlag{
			Name:    config.KeyOrder,
			Usage:   "Facts to show, in order (comma separated or repeated)",
			Sources: envVars(config.KeyOrder),
		},
	}
}

// loadConfig layers the config file, the env file and the flags, in that
// order, and validates the result.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path, explicit := config.DefaultPath(), false
	if cmd.IsSet(flagConfig) {
		path, explicit = cmd.String(flagConfig), true
	}

	opts, err := config.LoadFile(path, explicit)
	if err != nil {
		return nil, err
	}

	envOpts, err := config.LoadEnvFile(cmd.String(flagEnvFile))
	if err != nil {
		return nil, err
	}
	opts = append(opts, envOpts...)

	flagOpts, err := flagOptions(cmd)
	if err != nil {
		return nil, err
	}
	opts = append(opts, flagOpts...)

	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOptions returns options for the flags set on the command line or
// through their environment variables.
func flagOptions(cmd *cli.Command) ([]config.Option, error) {
	var opts []config.Option

	if cmd.IsSet(config.KeyColor) {
		opts = append(opts, config.WithColor(config.ColorMode(strings.ToLower(cmd.String(config.KeyColor)))))
	}

	toggles := map[string]func(bool) config.Option{
		config.KeyGPU:           config.WithGPU,
		config.KeyBootloader:    config.WithBootloader,
		config.KeyBattery:       config.WithBattery,
		config.KeyCPUTemp:       config.WithCPUTemp,
		config.KeyGPUTemp:       config.WithGPUTemp,
		config.KeyDisksDetailed: config.WithDisksDetailed,
		config.KeyIcons:         config.WithIcons,
		config.KeyCache:         config.WithCache,
		config.KeyProgressive:   config.WithProgressive,
	}
	for _, key := range config.Keys {
		if with, ok := toggles[key]; ok && cmd.IsSet(key) {
			opts = append(opts, with(cmd.Bool(key)))
		}
	}

	if cmd.IsSet(config.KeyDeadline) {
		opts = append(opts, config.WithDeadline(cmd.Duration(config.KeyDeadline)))
	}
	if cmd.IsSet(config.KeyAdapterTimeout) {
		opts = append(opts, config.WithAdapterTimeout(cmd.Duration(config.KeyAdapterTimeout)))
	}
	if cmd.IsSet(config.KeyBarWidth) {
		opts = append(opts, config.WithBarWidth(cmd.Int(config.KeyBarWidth)))
	}
	if cmd.IsSet(config.KeyWidth) {
		opts = append(opts, config.WithTerminalWidth(cmd.Int(config.KeyWidth)))
	}
	if cmd.IsSet(config.KeyCachePath) {
		opts = append(opts, config.WithCachePath(cmd.String(config.KeyCachePath)))
	}
	if cmd.IsSet(config.KeyLogoDir) {
		opts = append(opts, config.WithLogoDir(cmd.String(config.KeyLogoDir)))
	}
	if cmd.IsSet(config.KeyLogo) {
		opts = append(opts, config.WithLogo(cmd.String(config.KeyLogo)))
	}
	if cmd.IsSet(config.KeyOrder) {
		var names []string
		for _, v := range cmd.StringSlice(config.KeyOrder) {
			names = append(names, strings.Split(v, ",")...)
		}
		kinds, err := config.ParseOrder(names)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", config.KeyOrder, err)
		}
		opts = append(opts, config.WithOrder(kinds...))
	}
	return opts, nil
}

// parseOutputFormat returns the requested snapshot format, or an empty
// format for the report.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet(flagFormat) {
		return "", nil
	}
	return serializer.ParseFormat(cmd.String(flagFormat))
}
