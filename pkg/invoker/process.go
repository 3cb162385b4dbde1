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
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// Option configures a ProcessInvoker.
type Option func(*ProcessInvoker)

// WithBaseArgs sets arguments placed before the per-call arguments,
// typically the script path for an interpreter.
func WithBaseArgs(args ...string) Option {
	return func(p *ProcessInvoker) {
		p.baseArgs = append([]string(nil), args...)
	}
}

// WithDir sets the working directory of the process.
func WithDir(dir string) Option {
	return func(p *ProcessInvoker) {
		p.dir = dir
	}
}

// WithEnv adds KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) Option {
	return func(p *ProcessInvoker) {
		p.env = append(p.env, env...)
	}
}

// WithMaxOutputBytes caps each captured stream. Zero or negative disables the cap.
func WithMaxOutputBytes(n int64) Option {
	return func(p *ProcessInvoker) {
		p.maxOutputBytes = n
	}
}

// WithMaxConcurrent bounds the number of processes running at once.
// Zero or negative means unlimited.
func WithMaxConcurrent(n int64) Option {
	return func(p *ProcessInvoker) {
		p.maxConcurrent = n
	}
}

// ProcessInvoker implements Invoker by running an external executable.
type ProcessInvoker struct {
	command        string
	baseArgs       []string
	dir            string
	env            []string
	maxOutputBytes int64
	maxConcurrent  int64
	sem            *semaphore.Weighted
}

// NewProcessInvoker returns an invoker that runs command with the configured
// base arguments followed by the per-call arguments.
func NewProcessInvoker(command string, opts ...Option) *ProcessInvoker {
	p := &ProcessInvoker{command: command}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxConcurrent > 0 {
		p.sem = semaphore.NewWeighted(p.maxConcurrent)
	}
	return p
}

// Command returns the executable and base arguments used for every call.
func (p *ProcessInvoker) Command() (string, []string) {
	return p.command, append([]string(nil), p.baseArgs...)
}

// Invoke runs the process once with args and classifies the result.
func (p *ProcessInvoker) Invoke(ctx context.Context, args []string) (*Outcome, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	if p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("waiting for process slot: %w", err)
		}
		defer p.sem.Release(1)
	}

	subcommand := args[0]
	start := time.Now()
	invocationsInFlight.Inc()
	defer invocationsInFlight.Dec()

	out := p.run(ctx, args)

	duration := time.Since(start)
	invocationDuration.WithLabelValues(subcommand).Observe(duration.Seconds())
	invocationsTotal.WithLabelValues(subcommand, outcomeLabel(out)).Inc()

	if out.OK() {
		slog.Debug("process succeeded",
			"args", args,
			"duration", duration.String(),
		)
	} else {
		slog.Warn("process failed",
			"args", args,
			"kind", out.Failure.Kind,
			"exitCode", out.Failure.ExitCode,
			"error", out.Failure.Message,
			"duration", duration.String(),
		)
	}

	return out, nil
}

func (p *ProcessInvoker) run(ctx context.Context, args []string) *Outcome {
	cmdArgs := make([]string, 0, len(p.baseArgs)+len(args))
	cmdArgs = append(cmdArgs, p.baseArgs...)
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, p.command, cmdArgs...)
	cmd.Dir = p.dir
	if len(p.env) > 0 {
		cmd.Env = append(os.Environ(), p.env...)
	}

	// Overflow on either stream kills the process instead of waiting for it.
	kill := func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
	stdout := newCappedBuffer(p.maxOutputBytes, kill)
	stderr := newCappedBuffer(p.maxOutputBytes, kill)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	slog.Debug("starting process",
		"command", p.command,
		"args", cmdArgs,
	)

	if err := cmd.Start(); err != nil {
		return Failed(&Failure{
			Kind:     FailureStart,
			Message:  fmt.Sprintf("failed to start process: %v", err),
			ExitCode: -1,
			Cause:    err,
		})
	}

	waitErr := cmd.Wait()

	if stdout.Overflowed() || stderr.Overflowed() {
		return Failed(&Failure{
			Kind:     FailureOverflow,
			Message:  fmt.Sprintf("process output exceeded %d bytes", p.maxOutputBytes),
			ExitCode: exitCode(waitErr),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Cause:    errOutputLimit,
		})
	}

	if waitErr != nil {
		code := exitCode(waitErr)
		f := &Failure{
			Kind:     FailureExit,
			ExitCode: code,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Cause:    waitErr,
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			f.Message = fmt.Sprintf("process terminated: %v", ctxErr)
			f.Cause = ctxErr
			return Failed(f)
		}
		f.Message = exitMessage(code, f.Stdout, f.Stderr)
		return Failed(f)
	}

	value, err := parseDocument(stdout.Bytes())
	if err != nil {
		raw := stdout.String()
		return Failed(&Failure{
			Kind:    FailureParse,
			Message: fmt.Sprintf("failed to parse process output: %s", raw),
			Stdout:  raw,
			Stderr:  stderr.String(),
			Cause:   err,
		})
	}

	return Success(value)
}

// exitCode extracts the process exit status from a Wait error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// exitMessage picks the most specific diagnostic available for a non-zero exit:
// trimmed stderr, then an {"error": "..."} object on stdout, then a generic message.
func exitMessage(code int, stdout, stderr string) string {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return msg
	}

	var report struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &report); err == nil && report.Error != "" {
		return report.Error
	}

	return fmt.Sprintf("process exited with code %d", code)
}

// parseDocument returns data as a single JSON value, rejecting empty input and
// trailing content after the first document.
func parseDocument(data []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, stderrors.New("no output")
		}
		return nil, err
	}

	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, stderrors.New("unexpected data after JSON document")
	}

	return value, nil
}

func outcomeLabel(o *Outcome) string {
	if o.OK() {
		return "success"
	}
	return string(o.Failure.Kind)
}
