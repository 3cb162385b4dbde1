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
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/test": okHandler,
	}

	s := New(WithHandler(routes))

	if s.config == nil {
		t.Fatal("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.cors == nil {
		t.Error("expected cors to be initialized")
	}
	if s.httpServer.ReadHeaderTimeout == 0 {
		t.Error("expected read header timeout to be set")
	}
}

func TestWithOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("boxofficed"),
		WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"/daily": okHandler}),
		WithHandler(map[string]http.HandlerFunc{"/weekly": okHandler}),
	)

	if s.config.Name != "boxofficed" || s.config.Version != "1.2.3" {
		t.Errorf("unexpected identity %s/%s", s.config.Name, s.config.Version)
	}
	if s.config.Port != 9090 || s.config.RateLimit != 500 {
		t.Errorf("expected config to be applied, got port %d rate %v", s.config.Port, s.config.RateLimit)
	}
	for _, path := range []string{"/daily", "/weekly", "/"} {
		if _, ok := s.config.Handlers[path]; !ok {
			t.Errorf("expected %s handler to exist", path)
		}
	}
	if !strings.HasSuffix(s.httpServer.Addr, ":9090") {
		t.Errorf("expected address to use port 9090, got %s", s.httpServer.Addr)
	}
}

func TestDefaultServerName(t *testing.T) {
	if s := New(); s.config.Name != "server" {
		t.Errorf("expected default name 'server', got %s", s.config.Name)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}
}

func TestHealthEndpointMethodNotAllowed(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{"ready state", true, http.StatusOK},
		{"not ready state", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/daily": okHandler}))

	// Generate at least one sample for the request counter
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/daily", nil))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "boxoffice_http_requests_total") {
		t.Error("expected boxoffice_http_requests_total in metrics output")
	}
}

func TestMiddlewareAppliedToHandlers(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/daily": okHandler}))

	req := httptest.NewRequest(http.MethodGet, "/daily", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	for _, h := range []string{"X-Request-Id", "X-API-Version", "X-RateLimit-Limit", "Access-Control-Allow-Origin"} {
		if w.Header().Get(h) == "" {
			t.Errorf("expected %s header from middleware chain", h)
		}
	}
}

func TestSystemPathsCannotBeShadowed(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/health": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		},
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if called || w.Code != http.StatusOK {
		t.Errorf("expected built-in health handler, got status %d", w.Code)
	}
}

func TestDefaultRootHandler(t *testing.T) {
	s := New(
		WithName("boxofficed"),
		WithHandler(map[string]http.HandlerFunc{"/daily": okHandler}),
	)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp IndexResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode index: %v", err)
	}
	if resp.Name != "boxofficed" {
		t.Errorf("expected name boxofficed, got %s", resp.Name)
	}
	want := []string{"/daily", "/health", "/metrics", "/ready"}
	if fmt.Sprint(resp.Routes) != fmt.Sprint(want) {
		t.Errorf("expected routes %v, got %v", want, resp.Routes)
	}
}

func TestDefaultRootHandlerMethodNotAllowed(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if resp := decodeErrorResponse(t, w); resp.Code != string(ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %s", resp.Code)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	customCalled := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			customCalled = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !customCalled {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	cfg := NewConfig()
	cfg.ShutdownTimeout = time.Second

	s := New(WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/ready"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("server did not become ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown timed out")
	}

	if s.isReady() {
		t.Error("expected server to be not ready after shutdown")
	}
}

func TestStartFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	s := New(WithConfig(cfg))

	if err := s.Start(t.Context()); err == nil {
		t.Fatal("expected error when port is in use")
	}
	if s.isReady() {
		t.Error("expected server to stay not ready")
	}
}
