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
	"errors"
	"log/slog"
	"net/http"

	"github.com/boxoffice-api/boxoffice/pkg/boxoffice"
	"github.com/boxoffice-api/boxoffice/pkg/invoker"
	"github.com/boxoffice-api/boxoffice/pkg/serializer"
	"github.com/boxoffice-api/boxoffice/pkg/server"
)

// Handler serves box office queries over HTTP.
type Handler struct {
	client *boxoffice.Client
}

// NewHandler returns a Handler that runs queries through inv.
func NewHandler(inv invoker.Invoker) *Handler {
	return &Handler{client: boxoffice.NewClient(inv)}
}

// Routes returns one route per query kind under prefix, e.g. "/api/daily".
func (h *Handler) Routes(prefix string) map[string]http.HandlerFunc {
	prefix = normalizePrefix(prefix)
	routes := make(map[string]http.HandlerFunc, len(boxoffice.GetKinds()))
	for _, k := range boxoffice.GetKinds() {
		kind := boxoffice.Kind(k)
		routes[prefix+"/"+kind.String()] = h.HandleKind(kind)
	}
	return routes
}

// HandleKind returns the handler for GET {prefix}/{kind}.
//
// Query parameters are validated before the data process runs; a missing or
// invalid parameter is a 400. On success the document printed by the process
// is returned unchanged.
func (h *Handler) HandleKind(kind boxoffice.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
				"Method not allowed", false, nil)
			return
		}

		q, err := boxoffice.ParseQueryFromRequest(kind, r)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Invalid request", nil)
			return
		}

		out, err := h.client.Get(r.Context(), q)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				server.WriteError(w, r, http.StatusServiceUnavailable, server.ErrCodeServiceUnavailable,
					"Request ended before the query could run", true, nil)
				return
			}
			server.WriteErrorFromErr(w, r, err, "Failed to run query", nil)
			return
		}

		if !out.OK() {
			slog.Warn("query failed",
				"requestID", server.RequestIDFromContext(r.Context()),
				"kind", kind,
				"failure", out.Failure.Kind,
				"error", out.Failure.Message,
			)
			server.WriteErrorFromErr(w, r, out.Failure.ToStructured(), "Failed to run query", nil)
			return
		}

		serializer.RespondRawJSON(w, http.StatusOK, out.Value)
	}
}
