package scanner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// listEntry is the accepted JSON shape for list-file input.
type listEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// LoadList reads a pre-existing candidate list instead of walking a
// directory. A .json file must contain an array of {path, size} objects; a
// .txt file holds bare paths, one per line, with size 0. Any shape or
// extension problem is fatal: a selection run never starts on malformed list
// input.
func LoadList(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSONList(path)
	case ".txt":
		return loadTextList(path)
	default:
		return nil, fmt.Errorf("unsupported list file extension %q (want .json or .txt)", filepath.Ext(path))
	}
}

func loadJSONList(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	var raw []listEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid list file %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, le := range raw {
		if le.Path == "" {
			return nil, fmt.Errorf("invalid list file %s: entry %d missing path", path, i)
		}
		if le.Size < 0 {
			return nil, fmt.Errorf("invalid list file %s: entry %d has negative size", path, i)
		}
		entries = append(entries, Entry{
			Path: le.Path,
			Name: filepath.Base(le.Path),
			Size: le.Size,
		})
	}
	return entries, nil
}

func loadTextList(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{
			Path: line,
			Name: filepath.Base(line),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	return entries, nil
}
