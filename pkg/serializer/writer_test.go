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
package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testGross struct {
	Title string `json:"title" yaml:"title"`
	Gross int    `json:"gross" yaml:"gross"`
}

const testReport = `{"date":"2024-03-20","films":[{"title":"Dune: Part Two","gross":5120000}]}`

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testGross{
		{Title: "first", Gross: 123},
		{Title: "second", Gross: 456},
	}

	if err := writer.Serialize(t.Context(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testGross
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0] != data[0] {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := []testGross{{Title: "first", Gross: 123}}

	if err := writer.Serialize(t.Context(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testGross
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if len(result) != 1 || result[0] != data[0] {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_RawJSON(t *testing.T) {
	raw := json.RawMessage(testReport)

	t.Run("json keeps document", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatJSON, &buf).Serialize(t.Context(), raw); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		var got, want any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		_ = json.Unmarshal(raw, &want)
		gotJSON, _ := json.Marshal(got)
		wantJSON, _ := json.Marshal(want)
		if string(gotJSON) != string(wantJSON) {
			t.Errorf("got %s, want %s", gotJSON, wantJSON)
		}
	})

	t.Run("yaml decodes document", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatYAML, &buf).Serialize(t.Context(), raw); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "date: \"2024-03-20\"") && !strings.Contains(out, "date: 2024-03-20") {
			t.Errorf("expected date key in YAML output, got:\n%s", out)
		}
		if !strings.Contains(out, "title: 'Dune: Part Two'") && !strings.Contains(out, "title: \"Dune: Part Two\"") {
			t.Errorf("expected film title in YAML output, got:\n%s", out)
		}
	})

	t.Run("table flattens document", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatTable, &buf).Serialize(t.Context(), raw); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "films.[0].title") {
			t.Errorf("expected flattened key, got:\n%s", out)
		}
		if !strings.Contains(out, "5120000") {
			t.Errorf("expected gross value, got:\n%s", out)
		}
	})

	t.Run("invalid raw document", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewWriter(FormatYAML, &buf).Serialize(t.Context(), json.RawMessage(`{broken`))
		if err == nil {
			t.Fatal("expected error for invalid raw JSON")
		}
	})
}

func TestWriter_RawJSONKeepsIntegers(t *testing.T) {
	raw := json.RawMessage(`{"total":123456789,"rank":1,"big":9007199254740993,"share":0.25}`)

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatYAML, []string{"total: 123456789", "rank: 1", "big: 9007199254740993", "share: 0.25"}},
		{FormatTable, []string{"123456789", "9007199254740993", "0.25"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(tt.format, &buf).Serialize(t.Context(), raw); err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			out := buf.String()
			if strings.Contains(out, "e+") {
				t.Errorf("expected plain integers, got:\n%s", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output, got:\n%s", w, out)
				}
			}
		})
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := []any{
		testGross{Title: "first", Gross: 123},
		testGross{Title: "second", Gross: 456},
	}

	if err := writer.Serialize(t.Context(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
		t.Error("Expected table header not found")
	}
	if !strings.Contains(output, "[0].Title") || !strings.Contains(output, "[1].Gross") {
		t.Error("Expected flattened keys not found")
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(t.Context(), []testGross{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<empty>") {
		t.Errorf("Expected '<empty>' in output, got: %s", buf.String())
	}
}

func TestWriter_SerializeTable_NilValues(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"title": "x", "gross": nil}

	if err := NewWriter(FormatTable, &buf).Serialize(t.Context(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "gross") {
		t.Error("Expected nil field to be listed")
	}
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := contextWithCancel(t)
	cancel()

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, &buf).Serialize(ctx, testGross{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("invalid"), &buf)

	data := testGross{Title: "x", Gross: 1}
	if err := writer.Serialize(t.Context(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testGross
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal as JSON: %v", err)
	}
}

func TestWriter_Close(t *testing.T) {
	writer := NewStdoutWriter(FormatJSON)
	if err := writer.Close(); err != nil {
		t.Errorf("Close on stdout writer should not error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("Multiple Close calls should not error: %v", err)
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path uses stdout", func(t *testing.T) {
		for _, path := range []string{"", "  ", "\t"} {
			writer, err := NewFileWriterOrStdout(FormatJSON, path)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", path, err)
			}
			if writer.output != os.Stdout {
				t.Errorf("expected stdout for %q", path)
			}
		}
	})

	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")

		writer, err := NewFileWriterOrStdout(FormatJSON, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := writer.Serialize(t.Context(), testGross{Title: "x", Gross: 7}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read output file: %v", err)
		}
		var result testGross
		if err := json.Unmarshal(content, &result); err != nil {
			t.Fatalf("Failed to unmarshal file content: %v", err)
		}
		if result.Gross != 7 {
			t.Errorf("Unexpected data in file: %+v", result)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "report.json"))
		if err == nil {
			t.Fatal("expected error for missing directory")
		}
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" table ", FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.json":   FormatJSON,
		"out.YAML":   FormatYAML,
		"out.yml":    FormatYAML,
		"out.txt":    FormatTable,
		"out.table":  FormatTable,
		"out":        FormatJSON,
		"dir.d/file": FormatJSON,
	}

	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func contextWithCancel(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithCancel(t.Context())
}
