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
// Package api wires the box office query routes onto the HTTP server.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/boxoffice-api/boxoffice/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Building the process invoker that runs the data script
//   - Setting up one route per query kind, plus API documentation
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application Endpoints (with rate limiting, all GET):
//   - {prefix}/daily?date=YYYY-MM-DD
//   - {prefix}/weekend?year=&week=
//   - {prefix}/weekly?year=&week=
//   - {prefix}/monthly?year=&month=
//   - {prefix}/seasonal?year=&season=
//   - {prefix}/quarterly?year=&quarter=
//   - {prefix}/yearly?year=
//   - {prefix}/api-docs, {prefix}/api-docs/openapi.json, {prefix}/api-docs/openapi.yaml
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// A successful query returns the JSON document printed by the data script
// unchanged. Missing or invalid parameters return 400 before the script runs.
// A script failure returns 500 with code PROCESS_FAILED, or INVALID_OUTPUT
// when the script exited cleanly but printed something other than JSON.
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 3000)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - ROUTE_PREFIX: prefix for application routes, e.g. /api (default: none)
//   - BOXOFFICE_COMMAND: interpreter (default: python3, or python when VERCEL is set)
//   - BOXOFFICE_SCRIPT: data script path (default: boxoff.py)
//   - BOXOFFICE_WORKDIR: working directory of the data script
//   - BOXOFFICE_MAX_CONCURRENT: concurrent script limit (default: unlimited)
//   - BOXOFFICE_MAX_OUTPUT_BYTES: per-stream output cap (default: unbounded)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/boxoffice-api/boxoffice/pkg/api.version=1.0.0'"
package api
