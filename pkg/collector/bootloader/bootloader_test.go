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
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/hostfetch/pkg/platform"
)

func TestCollect(t *testing.T) {
	empty := &fstest.MapFile{Data: []byte("x")}

	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
		path string
	}{
		{
			name: "grub",
			fsys: fstest.MapFS{"boot/grub/grub.cfg": empty},
			want: "GRUB",
			path: "/boot/grub/grub.cfg",
		},
		{
			name: "grub on efi partition",
			fsys: fstest.MapFS{"boot/efi/EFI/fedora/grub.cfg": empty},
			want: "GRUB",
			path: "/boot/efi/EFI/fedora/grub.cfg",
		},
		{
			name: "limine beats grub",
			fsys: fstest.MapFS{
				"boot/grub/grub.cfg":         empty,
				"boot/limine/limine.conf":    empty,
				"efi/loader/loader.conf":     empty,
				"boot/syslinux/syslinux.cfg": empty,
			},
			want: "Limine",
			path: "/boot/limine/limine.conf",
		},
		{
			name: "systemd-boot",
			fsys: fstest.MapFS{"efi/loader/loader.conf": empty},
			want: "systemd-boot",
			path: "/efi/loader/loader.conf",
		},
		{
			name: "refind",
			fsys: fstest.MapFS{"boot/efi/EFI/refind/refind.conf": empty},
			want: "rEFInd",
		},
		{
			name: "extlinux",
			fsys: fstest.MapFS{"boot/extlinux/extlinux.conf": empty},
			want: "syslinux",
		},
		{
			name: "lilo",
			fsys: fstest.MapFS{"etc/lilo.conf": empty},
			want: "LILO",
		},
		{
			name: "freebsd loader",
			fsys: fstest.MapFS{"boot/loader.conf": empty},
			want: "BSD loader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCollector(tt.fsys).Collect(context.Background(), platform.Profile{})
			assert.True(t, f.IsOK())
			assert.Equal(t, tt.want, f.Value)
			if tt.path != "" {
				assert.Equal(t, tt.path, f.Details["path"])
			}
		})
	}
}

func TestCollect_None(t *testing.T) {
	f := NewCollector(fstest.MapFS{"etc/hostname": {Data: []byte("x")}}).Collect(context.Background(), platform.Profile{})
	assert.True(t, f.IsUnavailable())
	assert.Equal(t, "no known bootloader", f.Status.Reason)
}

func TestCollect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewCollector(fstest.MapFS{"boot/grub/grub.cfg": {Data: []byte("x")}}).Collect(ctx, platform.Profile{})
	assert.True(t, f.IsUnavailable())
}
