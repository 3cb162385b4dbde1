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

// Package invoker runs an external data process and turns its result into an Outcome.
//
// # Overview
//
// An Invoker accepts an ordered list of string arguments, runs one external
// process with them, and classifies what happened. The external process must
// print exactly one JSON document on stdout and exit 0 on success, or print
// diagnostic text on stderr and exit non-zero on failure.
//
// Every call produces exactly one Outcome:
//
//   - success: Outcome.Value holds the JSON document as printed
//   - failure: Outcome.Failure describes what went wrong
//
// Failure kinds:
//
//   - FailureStart: the process could not be launched (missing executable,
//     permission denied)
//   - FailureExit: the process exited non-zero; the message is its trimmed
//     stderr, the "error" field of a JSON object it printed on stdout, or a
//     generic "process exited with code N"
//   - FailureParse: the process exited 0 but stdout was not a single JSON document;
//     the message includes the raw output
//   - FailureOverflow: an output stream exceeded the configured limit
//
// The error return of Invoke is reserved for problems that prevent the process
// from being attempted at all: an empty argument list, or a context that ends
// while waiting for a concurrency slot.
//
// # Usage
//
//	inv := invoker.NewProcessInvoker("python3",
//	    invoker.WithBaseArgs("boxoff.py"),
//	    invoker.WithMaxConcurrent(8),
//	)
//
//	out, err := inv.Invoke(ctx, []string{"daily", "2024-03-20"})
//	if err != nil {
//	    return err
//	}
//	if !out.OK() {
//	    return out.Err()
//	}
//	fmt.Println(string(out.Value))
//
// # Concurrency
//
// Calls are independent and may run concurrently; each spawns its own process
// and owns its own output buffers. WithMaxConcurrent bounds the number of live
// processes; callers over the limit wait for a slot or for their context.
//
// The invoker imposes no timeout and never retries. If the caller's context
// ends while the process is running, the process is killed and the outcome is
// a FailureExit whose cause is the context error.
//
// # In-process implementations
//
// Func adapts a plain function to the Invoker interface, so the external
// process can be replaced by a native implementation or a test double:
//
//	var inv invoker.Invoker = invoker.Func(func(ctx context.Context, args []string) (*invoker.Outcome, error) {
//	    return invoker.Success(json.RawMessage(`{"total":1000000}`)), nil
//	})
package invoker
