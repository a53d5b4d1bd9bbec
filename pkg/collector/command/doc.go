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

// Package command runs external programs for fact adapters.
//
// A Runner checks the program is on PATH, starts it with the caller's
// context and waits for either its output or the context deadline. When the
// deadline wins, the process is killed best-effort by the exec layer and the
// runner returns at once with a SOURCE_TIMEOUT error; any late output is
// dropped.
//
// The exec layer is k8s.io/utils/exec, so tests script commands with
// k8s.io/utils/exec/testing:
//
//	fake := &testingexec.FakeExec{
//	    LookPathFunc: func(string) (string, error) { return "/usr/bin/lspci", nil },
//	    CommandScript: []testingexec.FakeCommandAction{...},
//	}
//	r := command.NewRunner(command.WithExec(fake))
package command
