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
package server

import (
	"testing"
	"time"

	"github.com/boxoffice-api/boxoffice/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv(EnvVarPort, "")
		t.Setenv(EnvVarShutdownTimeout, "")

		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 3000 {
			t.Errorf("expected port 3000, got %d", cfg.Port)
		}
		if cfg.RateLimit != defaults.RateLimit {
			t.Errorf("expected rate limit %d, got %v", defaults.RateLimit, cfg.RateLimit)
		}
		if cfg.RateLimitBurst != defaults.RateLimitBurst {
			t.Errorf("expected rate limit burst %d, got %d", defaults.RateLimitBurst, cfg.RateLimitBurst)
		}
		if cfg.ReadTimeout != defaults.ServerReadTimeout {
			t.Errorf("expected read timeout %v, got %v", defaults.ServerReadTimeout, cfg.ReadTimeout)
		}
		if cfg.WriteTimeout != defaults.ServerWriteTimeout {
			t.Errorf("expected write timeout %v, got %v", defaults.ServerWriteTimeout, cfg.WriteTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
		if len(cfg.AllowedOrigins) != 0 {
			t.Errorf("expected no origin restrictions, got %v", cfg.AllowedOrigins)
		}
	})

	t.Run("custom port from environment", func(t *testing.T) {
		t.Setenv(EnvVarPort, "9090")

		if cfg := parseConfig(); cfg.Port != 9090 {
			t.Errorf("expected port 9090 from env, got %d", cfg.Port)
		}
	})

	t.Run("invalid port from environment uses default", func(t *testing.T) {
		for _, v := range []string{"invalid", "-1", "70000", "80abc"} {
			t.Setenv(EnvVarPort, v)

			if cfg := parseConfig(); cfg.Port != defaults.ServerPort {
				t.Errorf("PORT=%q: expected default port, got %d", v, cfg.Port)
			}
		}
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv(EnvVarShutdownTimeout, "5")

		if cfg := parseConfig(); cfg.ShutdownTimeout != 5*time.Second {
			t.Errorf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("non-positive shutdown timeout ignored", func(t *testing.T) {
		t.Setenv(EnvVarShutdownTimeout, "0")

		if cfg := parseConfig(); cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
			t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
		}
	})
}
