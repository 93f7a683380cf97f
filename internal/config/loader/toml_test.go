package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/canvasedit.toml", `
[history]
max_entries = 50

[edit.paste_offset]
x = 10.5
y = 10

[logging]
level = "debug"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/canvasedit.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	history, ok := config["history"].(map[string]any)
	if !ok {
		t.Fatal("expected history to be a map")
	}
	if history["max_entries"] != int64(50) {
		t.Errorf("max_entries = %v (%T), want 50", history["max_entries"], history["max_entries"])
	}

	edit, ok := config["edit"].(map[string]any)
	if !ok {
		t.Fatal("expected edit to be a map")
	}
	offset, ok := edit["paste_offset"].(map[string]any)
	if !ok {
		t.Fatal("expected edit.paste_offset to be a map")
	}
	if offset["x"] != 10.5 {
		t.Errorf("paste_offset.x = %v, want 10.5", offset["x"])
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[history]\nmax_entries = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
	if !strings.Contains(pe.Error(), "line 2") {
		t.Errorf("Error() = %q, want line number", pe.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	loader := NewTOMLLoader("")
	config, err := loader.LoadFromReader(strings.NewReader(`[script]
timeout = "2s"`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	script := config["script"].(map[string]any)
	if script["timeout"] != "2s" {
		t.Errorf("timeout = %v", script["timeout"])
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.toml", "*loader.TOMLLoader", false},
		{"a.TOML", "*loader.TOMLLoader", false},
		{"a.yaml", "*loader.YAMLLoader", false},
		{"a.yml", "*loader.YAMLLoader", false},
		{"a.json", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := ForPath(NewMemFS(), tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath: %v", err)
			}
			switch l.(type) {
			case *TOMLLoader:
				if tt.want != "*loader.TOMLLoader" {
					t.Errorf("got TOML loader for %s", tt.path)
				}
			case *YAMLLoader:
				if tt.want != "*loader.YAMLLoader" {
					t.Errorf("got YAML loader for %s", tt.path)
				}
			}
		})
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"history": map[string]any{"max_entries": int64(100)},
		"logging": map[string]any{"level": "info", "format": "console"},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"script":  map[string]any{"timeout": "1s"},
	}

	out := DeepMerge(dst, src)

	logging := out["logging"].(map[string]any)
	if logging["level"] != "debug" {
		t.Errorf("level = %v, want debug", logging["level"])
	}
	if logging["format"] != "console" {
		t.Errorf("format = %v, want console", logging["format"])
	}
	if _, ok := out["script"]; !ok {
		t.Error("script section missing")
	}
	if out["history"].(map[string]any)["max_entries"] != int64(100) {
		t.Error("history section changed")
	}
}
