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
package api

import (
	"os"
	"strconv"
	"strings"

	"github.com/boxoffice-api/boxoffice/pkg/defaults"
	"github.com/boxoffice-api/boxoffice/pkg/invoker"
)

// Environment variables read by ParseConfig.
const (
	EnvVarRoutePrefix    = "ROUTE_PREFIX"
	EnvVarCommand        = "BOXOFFICE_COMMAND"
	EnvVarScript         = "BOXOFFICE_SCRIPT"
	EnvVarWorkDir        = "BOXOFFICE_WORKDIR"
	EnvVarMaxConcurrent  = "BOXOFFICE_MAX_CONCURRENT"
	EnvVarMaxOutputBytes = "BOXOFFICE_MAX_OUTPUT_BYTES"

	// EnvVarHosted is set by the hosting platform, which only ships an
	// unversioned python interpreter.
	EnvVarHosted = "VERCEL"
)

// Config describes the application routes and the data process behind them.
type Config struct {
	// RoutePrefix is prepended to every application route, e.g. "/api".
	RoutePrefix string

	// Command is the executable that runs the data script.
	Command string
	// Script is passed to Command before the query arguments. Empty runs
	// Command directly.
	Script string
	// WorkDir is the working directory of the data process.
	WorkDir string

	// MaxConcurrent bounds the number of live data processes. Zero is unlimited.
	MaxConcurrent int64
	// MaxOutputBytes caps each output stream of the data process. Zero is unbounded.
	MaxOutputBytes int64
}

// ParseConfig returns defaults overridden by environment variables.
func ParseConfig() *Config {
	cfg := &Config{
		Command:        defaults.InvokerCommand,
		Script:         defaults.InvokerScript,
		MaxConcurrent:  defaults.InvokerMaxConcurrent,
		MaxOutputBytes: defaults.InvokerMaxOutputBytes,
	}

	if os.Getenv(EnvVarHosted) != "" {
		cfg.Command = defaults.InvokerHostedCommand
	}
	if v := os.Getenv(EnvVarCommand); v != "" {
		cfg.Command = v
	}
	if v, ok := os.LookupEnv(EnvVarScript); ok {
		cfg.Script = v
	}
	if v := os.Getenv(EnvVarWorkDir); v != "" {
		cfg.WorkDir = v
	}
	cfg.RoutePrefix = os.Getenv(EnvVarRoutePrefix)
	cfg.MaxConcurrent = envInt64(EnvVarMaxConcurrent, cfg.MaxConcurrent)
	cfg.MaxOutputBytes = envInt64(EnvVarMaxOutputBytes, cfg.MaxOutputBytes)

	return cfg
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// NewInvoker builds the process invoker described by cfg.
func (c *Config) NewInvoker() *invoker.ProcessInvoker {
	opts := []invoker.Option{
		invoker.WithDir(c.WorkDir),
		invoker.WithMaxConcurrent(c.MaxConcurrent),
		invoker.WithMaxOutputBytes(c.MaxOutputBytes),
	}
	if c.Script != "" {
		opts = append(opts, invoker.WithBaseArgs(c.Script))
	}
	return invoker.NewProcessInvoker(c.Command, opts...)
}

// normalizePrefix returns prefix with a single leading slash and no trailing
// slash, or "" for the root.
func normalizePrefix(prefix string) string {
	p := strings.Trim(strings.TrimSpace(prefix), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
