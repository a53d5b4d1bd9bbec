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

package fact

import (
	"maps"

	hferrors "github.com/NVIDIA/hostfetch/pkg/errors"
)

// State is the collection outcome of a fact.
type State string

const (
	// StateOK means the value is complete.
	StateOK State = "ok"
	// StateDegraded means a partial or approximated value is shown with a marker.
	StateDegraded State = "degraded"
	// StateUnavailable means there is no value and the fact is not rendered.
	StateUnavailable State = "unavailable"
)

// Common unavailable reasons set by the orchestrator.
const (
	ReasonTimeout  = "timeout"
	ReasonDeadline = "deadline"
)

// Status is a State with the reason for anything other than StateOK.
type Status struct {
	State  State  `json:"state" yaml:"state"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Source tells where a fact came from.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
)

// Part is one sub-row of a fact, such as a disk partition or a package manager.
type Part struct {
	Label string   `json:"label" yaml:"label"`
	Value string   `json:"value" yaml:"value"`
	Ratio *float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
}

// Fact is a single labeled piece of host information with an explicit status.
// Facts are values: the With* helpers return modified copies.
type Fact struct {
	Kind    Kind              `json:"kind" yaml:"kind"`
	Label   string            `json:"label" yaml:"label"`
	Value   string            `json:"value,omitempty" yaml:"value,omitempty"`
	Status  Status            `json:"status" yaml:"status"`
	Ratio   *float64          `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Parts   []Part            `json:"parts,omitempty" yaml:"parts,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
	Source  Source            `json:"source,omitempty" yaml:"source,omitempty"`
}

// New returns an OK fact with the kind's default label.
func New(kind Kind, value string) Fact {
	return Fact{
		Kind:   kind,
		Label:  kind.Label(),
		Value:  value,
		Status: Status{State: StateOK},
		Source: SourceLive,
	}
}

// Degraded returns a fact carrying a partial value.
func Degraded(kind Kind, value, reason string) Fact {
	f := New(kind, value)
	f.Status = Status{State: StateDegraded, Reason: reason}
	return f
}

// Unavailable returns a fact without a value.
func Unavailable(kind Kind, reason string) Fact {
	return Fact{
		Kind:   kind,
		Label:  kind.Label(),
		Status: Status{State: StateUnavailable, Reason: reason},
		Source: SourceLive,
	}
}

// FromError converts an adapter error into an unavailable fact.
// The reason is the short message of the error, "timeout" for deadline errors.
func FromError(kind Kind, err error) Fact {
	if hferrors.CodeOf(err) == hferrors.ErrCodeSourceTimeout {
		return Unavailable(kind, ReasonTimeout)
	}
	return Unavailable(kind, hferrors.MessageOf(err))
}

// IsOK reports whether the fact is complete.
func (f Fact) IsOK() bool { return f.Status.State == StateOK }

// IsDegraded reports whether the fact carries a partial value.
func (f Fact) IsDegraded() bool { return f.Status.State == StateDegraded }

// IsUnavailable reports whether the fact has no value.
func (f Fact) IsUnavailable() bool { return f.Status.State == StateUnavailable }

// WithRatio returns a copy with the ratio set, clamped to [0,1].
// Unavailable facts never carry a ratio.
func (f Fact) WithRatio(r float64) Fact {
	if f.IsUnavailable() {
		return f
	}
	c := clamp(r)
	f.Ratio = &c
	return f
}

// WithParts returns a copy with the given sub-rows.
func (f Fact) WithParts(parts ...Part) Fact {
	if f.IsUnavailable() {
		return f
	}
	f.Parts = append([]Part(nil), parts...)
	return f
}

// WithDetail returns a copy with a sub-field set.
func (f Fact) WithDetail(key, value string) Fact {
	d := make(map[string]string, len(f.Details)+1)
	maps.Copy(d, f.Details)
	d[key] = value
	f.Details = d
	return f
}

// WithLabel returns a copy with a custom label.
func (f Fact) WithLabel(label string) Fact {
	f.Label = label
	return f
}

// WithSource returns a copy marked with the given source.
func (f Fact) WithSource(s Source) Fact {
	f.Source = s
	return f
}

// Degrade returns a copy downgraded to Degraded with the reason.
// Unavailable facts stay unavailable.
func (f Fact) Degrade(reason string) Fact {
	if f.IsUnavailable() {
		return f
	}
	f.Status = Status{State: StateDegraded, Reason: reason}
	return f
}

// Normalize enforces the fact invariants: a known label, an unavailable fact
// has no value, ratio or parts, and ratios lie in [0,1].
func (f Fact) Normalize() Fact {
	if f.Label == "" {
		f.Label = f.Kind.Label()
	}
	if f.Status.State == "" {
		f.Status.State = StateOK
	}
	if f.Source == "" {
		f.Source = SourceLive
	}
	if f.IsUnavailable() {
		f.Value = ""
		f.Ratio = nil
		f.Parts = nil
		return f
	}
	if f.Ratio != nil {
		c := clamp(*f.Ratio)
		f.Ratio = &c
	}
	return f
}

// RatioOf returns used/total and false when total is zero.
func RatioOf(used, total uint64) (float64, bool) {
	if total == 0 {
		return 0, false
	}
	return clamp(float64(used) / float64(total)), true
}

// PartRatio returns a pointer to a clamped ratio for use in a Part.
func PartRatio(r float64) *float64 {
	c := clamp(r)
	return &c
}

func clamp(r float64) float64 {
	switch {
	case r != r: // NaN
		return 0
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
