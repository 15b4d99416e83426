package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadList_JSON(t *testing.T) {
	path := writeList(t, "list.json", `[
		{"path": "/photos/IMG_20240612_183015.jpg", "size": 2048},
		{"path": "/photos/20240613-090000.heic", "size": 4096}
	]`)

	entries, err := LoadList(path)
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name != "IMG_20240612_183015.jpg" || entries[0].Size != 2048 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestLoadList_JSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "hello"},
		{"object instead of array", `{"path": "/a.jpg", "size": 1}`},
		{"missing path", `[{"size": 10}]`},
		{"negative size", `[{"path": "/a.jpg", "size": -1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeList(t, "list.json", tt.content)
			if _, err := LoadList(path); err == nil {
				t.Errorf("LoadList accepted malformed input: %s", tt.content)
			}
		})
	}
}

func TestLoadList_Text(t *testing.T) {
	path := writeList(t, "list.txt", `
/photos/IMG_20240612_183015.jpg
# a comment

/photos/20240613-090000.heic
`)

	entries, err := LoadList(path)
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Plain-text lists carry no sizes.
	for _, e := range entries {
		if e.Size != 0 {
			t.Errorf("text entry %s has size %d, want 0", e.Path, e.Size)
		}
	}
}

func TestLoadList_UnsupportedExtension(t *testing.T) {
	path := writeList(t, "list.csv", "path,size\n/a.jpg,10\n")
	if _, err := LoadList(path); err == nil {
		t.Error("expected error for unsupported list extension")
	}
}

func TestLoadList_MissingFile(t *testing.T) {
	if _, err := LoadList(filepath.Join(t.TempDir(), "ghost.json")); err == nil {
		t.Error("expected error for missing list file")
	}
}
