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
	"context"
	"log/slog"
	"maps"
	"net/http"

	"github.com/boxoffice-api/boxoffice/pkg/invoker"
	"github.com/boxoffice-api/boxoffice/pkg/logging"
	"github.com/boxoffice-api/boxoffice/pkg/server"
)

const (
	name           = "boxofficed"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/boxoffice-api/boxoffice/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve configures logging from the environment, starts the API server, and
// blocks until shutdown.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	return Run(context.Background(), ParseConfig())
}

// Run starts the API server for cfg and blocks until ctx is canceled or the
// process is signaled. Server options (typically server.WithConfig) are
// applied before the application routes.
func Run(ctx context.Context, cfg *Config, opts ...server.Option) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	inv := cfg.NewInvoker()
	command, baseArgs := inv.Command()
	slog.Info("data process configured",
		"command", command,
		"args", baseArgs,
		"maxConcurrent", cfg.MaxConcurrent,
		"maxOutputBytes", cfg.MaxOutputBytes,
		"routePrefix", normalizePrefix(cfg.RoutePrefix),
	)

	s := NewServer(cfg, inv, opts...)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer builds the HTTP server with query and documentation routes backed
// by inv.
func NewServer(cfg *Config, inv invoker.Invoker, opts ...server.Option) *server.Server {
	routes := make(map[string]http.HandlerFunc)
	maps.Copy(routes, NewHandler(inv).Routes(cfg.RoutePrefix))
	maps.Copy(routes, NewDocs(cfg.RoutePrefix).Routes())

	opts = append(opts,
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
	)
	return server.New(opts...)
}
