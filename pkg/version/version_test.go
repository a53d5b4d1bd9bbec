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

package version

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input     string
		major     int
		minor     int
		patch     int
		precision int
		extras    string
		wantErr   error
	}{
		{"6.8.0-45-generic", 6, 8, 0, 3, "-45-generic", nil},
		{"6.18.44-fc-v139", 6, 18, 44, 3, "-fc-v139", nil},
		{"14.1-RELEASE-p3", 14, 1, 0, 2, "-RELEASE-p3", nil},
		{"7.4", 7, 4, 0, 2, "", nil},
		{"23.1.0", 23, 1, 0, 3, "", nil},
		{"6.1.21+rpt-rpi-v8", 6, 1, 21, 3, "+rpt-rpi-v8", nil},
		{"v5", 5, 0, 0, 1, "", nil},
		{"", 0, 0, 0, 0, "", ErrEmptyVersion},
		{"1.2.3.4", 0, 0, 0, 0, "", ErrTooManyComponents},
		{"abc", 0, 0, 0, 0, "", ErrNonNumeric},
		{"1..2", 0, 0, 0, 0, "", ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("ParseVersion(%q) = %d.%d.%d, want %d.%d.%d", tt.input, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
			if v.Precision != tt.precision {
				t.Errorf("precision = %d, want %d", v.Precision, tt.precision)
			}
			if v.Extras != tt.extras {
				t.Errorf("extras = %q, want %q", v.Extras, tt.extras)
			}
		})
	}
}

func TestVersionFull(t *testing.T) {
	v, err := ParseVersion("6.8.0-45-generic")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Full(); got != "6.8.0-45-generic" {
		t.Errorf("Full() = %q", got)
	}
	if got := v.String(); got != "6.8.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestCompare(t *testing.T) {
	a, _ := ParseVersion("6.8.0")
	b, _ := ParseVersion("6.10")
	c, _ := ParseVersion("6.8.12-1")

	if a.Compare(b) != -1 {
		t.Errorf("expected 6.8.0 < 6.10")
	}
	if b.Compare(a) != 1 {
		t.Errorf("expected 6.10 > 6.8.0")
	}
	if a.Compare(c) != -1 {
		t.Errorf("expected 6.8.0 < 6.8.12")
	}
	if a.Compare(a) != 0 {
		t.Errorf("expected equal")
	}
}
