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

package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// Fingerprint identifies one boot of one host. It changes when the host is
// renamed, the kernel is upgraded or the machine reboots.
func Fingerprint(hostname, kernel string, boot time.Time) string {
	var b strings.Builder
	b.WriteString(hostname)
	b.WriteByte(0)
	b.WriteString(kernel)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(boot.Unix(), 10))
	return strconv.FormatUint(xxh3.HashString(b.String()), 16)
}
