package server

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reactagent.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest fixture: %v", err)
	}
	return path
}

func TestLoadManifest_Valid(t *testing.T) {
	path := writeManifest(t, `{
		"graphs": {"agent": "github.com/leofalp/react-agent.New"},
		"env": ".env"
	}`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.Graphs["agent"] != "github.com/leofalp/react-agent.New" {
		t.Errorf("unexpected graphs: %+v", manifest.Graphs)
	}
	if manifest.Env != ".env" {
		t.Errorf("unexpected env: %q", manifest.Env)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid JSON", content: `{"graphs": `},
		{name: "no graphs", content: `{"graphs": {}}`},
		{name: "empty graph id", content: `{"graphs": {"": "pkg.New"}}`},
		{name: "empty factory", content: `{"graphs": {"agent": ""}}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			path := writeManifest(t, testCase.content)
			if _, err := LoadManifest(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
