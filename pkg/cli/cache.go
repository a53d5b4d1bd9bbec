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

	"github.com/urfave/cli/v3"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or remove the fact cache",
		Description: `The cache keeps slow-changing facts such as the CPU model or the
package count between runs. Entries are tied to the hostname, kernel and boot
time and expire per fact kind.`,
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "Print the cache file location",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					store, err := newStore(cfg)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.Root().Writer, store.Path())
					return err
				},
			},
			{
				Name:  "clear",
				Usage: "Remove the cache file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					store, err := newStore(cfg)
					if err != nil {
						return err
					}
					if err := store.Clear(); err != nil {
						return fmt.Errorf("failed to clear cache: %w", err)
					}
					slog.Info("cache cleared", slog.String("path", store.Path()))
					return nil
				},
			},
		},
	}
}
