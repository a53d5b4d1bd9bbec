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
	"time"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/header"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// NewSnapshot creates a new Snapshot for the profile with an initialized
// Facts slice.
func NewSnapshot(p platform.Profile) *Snapshot {
	return &Snapshot{
		Profile: p,
		Facts:   make([]fact.Fact, 0),
	}
}

// Snapshot is the ordered result of one collection run.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Profile is the platform the facts were collected on.
	Profile platform.Profile `json:"profile" yaml:"profile"`

	// Facts are in display order. Unavailable facts are kept so exports
	// show why a kind is missing.
	Facts []fact.Fact `json:"facts" yaml:"facts"`

	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// DeadlineHit is set when the global deadline cut the run short.
	DeadlineHit bool `json:"deadlineHit" yaml:"deadlineHit"`
}

// Fact returns the fact of kind.
func (s *Snapshot) Fact(kind fact.Kind) (fact.Fact, bool) {
	for _, f := range s.Facts {
		if f.Kind == kind {
			return f, true
		}
	}
	return fact.Fact{}, false
}

// Visible returns the facts that produce report rows.
func (s *Snapshot) Visible() []fact.Fact {
	out := make([]fact.Fact, 0, len(s.Facts))
	for _, f := range s.Facts {
		if !f.IsUnavailable() {
			out = append(out, f)
		}
	}
	return out
}

// TableHeader names the columns of the table export.
func (s *Snapshot) TableHeader() []string {
	return []string{"KIND", "LABEL", "STATE", "VALUE", "SOURCE", "REASON"}
}

// TableRows returns one row per fact, plus one indented row per part.
func (s *Snapshot) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Facts))
	for _, f := range s.Facts {
		rows = append(rows, []string{
			f.Kind.String(),
			f.Label,
			string(f.Status.State),
			orDash(f.Value),
			orDash(string(f.Source)),
			orDash(f.Status.Reason),
		})
		for _, p := range f.Parts {
			rows = append(rows, []string{"", "  " + p.Label, "", orDash(p.Value), "", ""})
		}
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
