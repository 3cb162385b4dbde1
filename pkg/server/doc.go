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
// Package server provides the HTTP server shared by the box office API.
//
// # Architecture
//
// The server is stateless. Application handlers are registered through
// WithHandler and wrapped with a middleware chain:
//
//   - Prometheus RED metrics (boxoffice_http_*)
//   - CORS (github.com/rs/cors), allowing any origin by default
//   - API version negotiation via the Accept header
//   - Request ID tracking (X-Request-Id)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Debug request logging
//
// System endpoints are registered without middleware:
//
//   - GET /health: liveness, always 200 while the process runs
//   - GET /ready: 200 while serving, 503 before start and during shutdown
//   - GET /metrics: Prometheus exposition
//
// A default index handler at "/" lists the registered routes. Requests for
// unknown paths fall through to it and receive a JSON 404.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("boxofficed"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/daily": handleDaily,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Error Responses
//
// All errors use a single JSON envelope:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "Date parameter is required",
//	  "details": {"required": ["date"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": false
//	}
//
// Use WriteError for explicit codes or WriteErrorFromErr to map a
// pkg/errors StructuredError to its HTTP status.
//
// # Configuration
//
// Defaults come from pkg/defaults and may be overridden by environment:
//
//   - PORT: listen port (default 3000)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window (default 30)
//
// # API Versioning
//
// Clients may request a version with
// Accept: application/vnd.boxoffice.v1+json. The negotiated version is
// returned in the X-API-Version header. Only v1 exists today.
package server
