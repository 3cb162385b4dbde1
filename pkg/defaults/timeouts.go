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

package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// The deadline only fails the response write; it does not stop the
	// external data process, which runs until it exits or the client goes away.
	ServerWriteTimeout = 90 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Server listener and rate limiting defaults.
const (
	// ServerPort is the default listen port.
	ServerPort = 3000

	// RateLimit is the sustained request rate (requests per second) for API routes.
	RateLimit = 20

	// RateLimitBurst is the token bucket size for API routes.
	RateLimitBurst = 40
)

// Invoker defaults for the external data process.
const (
	// InvokerCommand is the interpreter used to run the data script.
	InvokerCommand = "python3"

	// InvokerHostedCommand is used instead of InvokerCommand on hosted
	// platforms that only provide an unversioned interpreter.
	InvokerHostedCommand = "python"

	// InvokerScript is the data script path, relative to the working directory.
	InvokerScript = "boxoff.py"

	// InvokerMaxConcurrent is the number of concurrent data processes allowed.
	// Zero means unlimited.
	InvokerMaxConcurrent = 0

	// InvokerMaxOutputBytes caps each captured output stream. Zero means unbounded.
	InvokerMaxOutputBytes = 0
)
