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
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/boxoffice-api/boxoffice/pkg/serializer"
	"github.com/boxoffice-api/boxoffice/pkg/server"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsPath = "/api-docs"

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Box Office API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => { window.ui = SwaggerUIBundle({ url: {{.}}, dom_id: "#swagger-ui" }); };
  </script>
</body>
</html>
`))

// Docs serves the OpenAPI document and a Swagger UI page.
type Docs struct {
	prefix string

	once     sync.Once
	jsonDoc  []byte
	yamlDoc  []byte
	buildErr error
}

// NewDocs returns API documentation for routes mounted under prefix.
func NewDocs(prefix string) *Docs {
	return &Docs{prefix: normalizePrefix(prefix)}
}

// Routes returns the documentation routes under the prefix.
func (d *Docs) Routes() map[string]http.HandlerFunc {
	base := d.prefix + docsPath
	return map[string]http.HandlerFunc{
		base:                   d.HandleUI,
		base + "/openapi.json": d.HandleJSON,
		base + "/openapi.yaml": d.HandleYAML,
	}
}

// build renders the embedded document with a server entry for the prefix.
func (d *Docs) build() {
	d.once.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
			d.buildErr = fmt.Errorf("failed to parse OpenAPI document: %w", err)
			return
		}

		serverURL := d.prefix
		if serverURL == "" {
			serverURL = "/"
		}
		doc["servers"] = []map[string]any{{"url": serverURL}}

		if d.jsonDoc, d.buildErr = json.MarshalIndent(doc, "", "  "); d.buildErr != nil {
			return
		}
		d.yamlDoc, d.buildErr = yaml.Marshal(doc)
	})
}

// HandleJSON serves GET {prefix}/api-docs/openapi.json.
func (d *Docs) HandleJSON(w http.ResponseWriter, r *http.Request) {
	d.serve(w, r, "application/json", func() []byte { return d.jsonDoc })
}

// HandleYAML serves GET {prefix}/api-docs/openapi.yaml.
func (d *Docs) HandleYAML(w http.ResponseWriter, r *http.Request) {
	d.serve(w, r, "application/yaml", func() []byte { return d.yamlDoc })
}

func (d *Docs) serve(w http.ResponseWriter, r *http.Request, contentType string, body func() []byte) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	d.build()
	if d.buildErr != nil {
		slog.Error("api docs unavailable", "error", d.buildErr)
		server.WriteError(w, r, http.StatusInternalServerError, server.ErrCodeInternalError,
			"API documentation unavailable", false, nil)
		return
	}

	if contentType == "application/json" {
		serializer.RespondRawJSON(w, http.StatusOK, body())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// HandleUI serves the Swagger UI page at GET {prefix}/api-docs.
func (d *Docs) HandleUI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := swaggerPage.Execute(w, d.prefix+docsPath+"/openapi.json"); err != nil {
		slog.Warn("failed to render api docs page", "error", err)
	}
}
