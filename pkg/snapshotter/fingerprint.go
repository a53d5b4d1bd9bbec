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

package snapshotter

import (
	"context"
	"os"

	"github.com/NVIDIA/hostfetch/pkg/cache"
	"github.com/NVIDIA/hostfetch/pkg/collector/uptime"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// HostFingerprint computes the cache key of the running host. It fails when
// the hostname or boot time cannot be read, in which case the cache is not
// used.
func HostFingerprint(ctx context.Context, p platform.Profile) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnavailable, "hostname unknown", err)
	}

	var boot uptime.BootSource = uptime.HostBootTime
	if p.Family == platform.FamilyLinux {
		boot = uptime.ProcBootTime("")
	}
	bt, err := boot(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnavailable, "boot time unknown", err)
	}
	return cache.Fingerprint(hostname, p.KernelVersion, bt), nil
}
