package loader

import (
	"errors"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/canvasedit.yaml", `
history:
  max_entries: 25
edit:
  duplicate_offset:
    x: 5
    y: 5
logging:
  format: json
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/canvasedit.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	history, ok := config["history"].(map[string]any)
	if !ok {
		t.Fatal("expected history to be a map")
	}
	if history["max_entries"] != 25 {
		t.Errorf("max_entries = %v (%T), want 25", history["max_entries"], history["max_entries"])
	}

	logging := config["logging"].(map[string]any)
	if logging["format"] != "json" {
		t.Errorf("format = %v, want json", logging["format"])
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "history: [unclosed\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestYAMLLoader_MissingFile(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/none.yaml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}
