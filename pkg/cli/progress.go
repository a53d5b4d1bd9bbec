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
	"io"
	"strings"
	"sync"
)

// redrawer rewrites the previous frame in place using cursor movement.
// When disabled only the final frame is written.
type redrawer struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	lines   int
}

func newRedrawer(out io.Writer, enabled bool) *redrawer {
	return &redrawer{out: out, enabled: enabled}
}

func (r *redrawer) draw(frame string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.write(frame)
}

func (r *redrawer) finish(frame string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(frame)
}

func (r *redrawer) write(frame string) error {
	var b strings.Builder
	if r.enabled && r.lines > 0 {
		// cursor up, then clear to the end of the screen
		fmt.Fprintf(&b, "\x1b[%dA\x1b[J", r.lines)
	}
	b.WriteString(frame)
	r.lines = strings.Count(frame, "\n")

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
