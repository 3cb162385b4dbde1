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

// Package defaults provides centralized configuration constants for the box office API.
//
// This package defines timeout values, rate limits, and external process defaults
// used across the codebase. Centralizing these values ensures consistency and
// makes tuning easier.
//
// # Categories
//
//   - Server timeouts: For HTTP server configuration
//   - Rate limits: For the token bucket applied to API routes
//   - Invoker defaults: For the external data process
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/boxoffice-api/boxoffice/pkg/defaults"
//
//	srv := &http.Server{ReadTimeout: defaults.ServerReadTimeout}
//
// # Guidelines
//
//   - Write timeout must leave room for the slowest data query; the external
//     script scrapes remote sources and is not bounded by the invoker.
//   - Server shutdown: 30s for graceful shutdown
package defaults
