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

package collector

import (
	"context"

	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

// ReasonUnsupported is the status reason of kinds without an implementation
// for the host family.
const ReasonUnsupported = "unsupported platform"

// Collector gathers a single fact.
type Collector interface {
	Collect(ctx context.Context, p platform.Profile) fact.Fact
}

// Func adapts a function to the Collector interface.
type Func func(ctx context.Context, p platform.Profile) fact.Fact

// Collect calls fn.
func (fn Func) Collect(ctx context.Context, p platform.Profile) fact.Fact {
	return fn(ctx, p)
}

// Unsupported returns a collector that reports kind as unavailable.
func Unsupported(kind fact.Kind) Collector {
	return Func(func(context.Context, platform.Profile) fact.Fact {
		return fact.Unavailable(kind, ReasonUnsupported)
	})
}

// Binding pairs a kind with the collector chosen for it.
type Binding struct {
	Kind      fact.Kind
	Collector Collector
}
