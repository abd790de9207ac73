package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/graph"
)

func sampleGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "Web", Label: "Web [app]", Type: graph.TypeProject},
			{ID: "Serilog", Label: "Serilog", Type: graph.TypePackage, HasMultipleVersions: true},
		},
		Edges: []graph.Edge{
			{From: "Web", To: "Serilog", Label: "3.1.1 | 4.0.0", HasMultipleVersions: true},
		},
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sampleGraph(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleGraph()) {
		t.Errorf("ImportJSON() = %+v, want %+v", got, sampleGraph())
	}
}

func TestWriteJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(), &buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"multipleVersions": true`, `"type": "project"`, `"from": "Web"`, `"label": "3.1.1 | 4.0.0"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s:\n%s", want, buf.String())
		}
	}
}

func TestWriteJSONEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&graph.Graph{}, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(strings.Fields(buf.String()), ""); got != `{"nodes":[],"edges":[]}` {
		t.Errorf("WriteJSON(empty) = %s", got)
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  sdverr.Code
	}{
		{"malformed", `{"nodes": [`, sdverr.ErrCodeInvalidManifest},
		{"empty id", `{"nodes": [{"id": "", "type": "package"}]}`, sdverr.ErrCodeInvalidIdentifier},
		{"duplicate id", `{"nodes": [{"id": "A", "type": "package"}, {"id": "a", "type": "package"}]}`, sdverr.ErrCodeInvalidIdentifier},
		{"unknown type", `{"nodes": [{"id": "A", "type": "library"}]}`, sdverr.ErrCodeInvalidManifest},
		{"dangling edge", `{"nodes": [{"id": "A", "type": "package"}], "edges": [{"from": "A", "to": "B"}]}`, sdverr.ErrCodeInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !sdverr.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}
