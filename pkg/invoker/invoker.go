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

package invoker

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/boxoffice-api/boxoffice/pkg/errors"
)

// ErrNoArguments is returned when Invoke is called without arguments.
var ErrNoArguments = stderrors.New("at least one argument is required")

// Invoker runs one external query and reports its outcome.
type Invoker interface {
	// Invoke runs the query identified by args. The first argument selects the
	// query kind; the rest are positional parameters.
	Invoke(ctx context.Context, args []string) (*Outcome, error)
}

// Func adapts an ordinary function to the Invoker interface.
type Func func(ctx context.Context, args []string) (*Outcome, error)

// Invoke calls f(ctx, args).
func (f Func) Invoke(ctx context.Context, args []string) (*Outcome, error) {
	return f(ctx, args)
}

// FailureKind classifies why an invocation failed.
type FailureKind string

const (
	// FailureStart means the process could not be launched.
	FailureStart FailureKind = "start"
	// FailureExit means the process exited with a non-zero status.
	FailureExit FailureKind = "exit"
	// FailureParse means stdout was not a single JSON document.
	FailureParse FailureKind = "parse"
	// FailureOverflow means an output stream exceeded the configured limit.
	FailureOverflow FailureKind = "overflow"
)

// Failure describes a failed invocation.
type Failure struct {
	Kind     FailureKind
	Message  string
	ExitCode int
	Stdout   string
	Stderr   string
	Cause    error
}

// Error implements the error interface and returns the failure message.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// ToStructured converts the failure into a StructuredError carrying the
// failure kind and exit code as context.
func (f *Failure) ToStructured() *errors.StructuredError {
	code := errors.ErrCodeProcessFailed
	if f.Kind == FailureParse {
		code = errors.ErrCodeInvalidOutput
	}
	return errors.WrapWithContext(code, f.Message, f.Cause, map[string]any{
		"kind":     string(f.Kind),
		"exitCode": f.ExitCode,
	})
}

// Outcome is the result of one invocation: either a JSON value or a Failure.
type Outcome struct {
	// Value is the JSON document printed by the process. Nil on failure.
	Value json.RawMessage
	// Failure is set when the invocation failed. Nil on success.
	Failure *Failure
}

// Success returns a successful outcome carrying value.
func Success(value json.RawMessage) *Outcome {
	return &Outcome{Value: value}
}

// Failed returns a failed outcome.
func Failed(f *Failure) *Outcome {
	return &Outcome{Failure: f}
}

// OK reports whether the outcome is a success.
func (o *Outcome) OK() bool {
	return o != nil && o.Failure == nil
}

// Err returns the failure as an error, or nil on success.
func (o *Outcome) Err() error {
	if o == nil || o.Failure == nil {
		return nil
	}
	return o.Failure
}

// Decode unmarshals the success value into v.
func (o *Outcome) Decode(v any) error {
	if !o.OK() {
		return fmt.Errorf("cannot decode failed outcome: %w", o.Err())
	}
	if err := json.Unmarshal(o.Value, v); err != nil {
		return fmt.Errorf("failed to decode outcome value: %w", err)
	}
	return nil
}
