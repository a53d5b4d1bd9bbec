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

package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"k8s.io/utils/exec"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/errors"
)

// Option configures a Runner.
type Option func(*Runner)

// Runner executes commands with a bounded wait.
type Runner struct {
	exec    exec.Interface
	timeout time.Duration
}

// WithExec sets the exec implementation.
func WithExec(e exec.Interface) Option {
	return func(r *Runner) {
		r.exec = e
	}
}

// WithTimeout sets the upper bound for a single command.
// The caller's context deadline still applies when it is shorter.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner returns a Runner backed by the real exec implementation.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		exec:    exec.New(),
		timeout: defaults.CommandTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether name resolves on PATH.
func (r *Runner) Available(name string) bool {
	_, err := r.exec.LookPath(name)
	return err == nil
}

type result struct {
	out []byte
	err error
}

// Output runs name with args and returns its trimmed stdout.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := r.exec.LookPath(name); err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnavailable, fmt.Sprintf("%s not found", name), err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := r.exec.CommandContext(ctx, name, args...)

	done := make(chan result, 1)
	go func() {
		out, err := cmd.Output()
		done <- result{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if ctx.Err() != nil {
				return "", errors.Wrap(errors.ErrCodeSourceTimeout, "timeout", ctx.Err())
			}
			return "", errors.WrapWithContext(errors.ErrCodeSourceUnavailable,
				fmt.Sprintf("%s failed", name), res.err,
				map[string]any{"args": strings.Join(args, " ")})
		}
		return strings.TrimSpace(string(res.out)), nil
	case <-ctx.Done():
		slog.Debug("abandoning command",
			slog.String("command", name),
			slog.String("reason", ctx.Err().Error()))
		return "", errors.Wrap(errors.ErrCodeSourceTimeout, "timeout", ctx.Err())
	}
}

// Lines runs name and returns its non-empty output lines.
func (r *Runner) Lines(ctx context.Context, name string, args ...string) ([]string, error) {
	out, err := r.Output(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	var lines []string
	for line := range strings.SplitSeq(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
