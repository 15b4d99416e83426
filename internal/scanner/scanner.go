// Package scanner discovers candidate media files, either by walking a
// directory tree or by ingesting a pre-existing file list.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultMinSize is the smallest file size considered a real photo. Anything
// below is assumed to be a thumbnail or app asset.
const DefaultMinSize int64 = 100 << 10 // 100 KiB

// imageExts contains the media file extensions accepted by the walk.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".hif":  true,
	".dng":  true,
	".arw":  true,
	".cr2":  true,
	".nef":  true,
	".raf":  true,
}

// junkPattern filters out filenames that carry a timestamp but are not
// photos worth keeping (screenshots, thumbnails, app icons).
var junkPattern = regexp.MustCompile(`(?i)(screenshot|screen_shot|thumbnails?|thumbs?|cache|icon|logo)`)

// Entry is one candidate media file as discovered by the scanner.
type Entry struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Options configures the directory walk.
type Options struct {
	// MinSize drops files smaller than this many bytes (0 = DefaultMinSize).
	MinSize int64
}

// Result contains the entries found by a walk plus any non-fatal errors
// encountered along the way.
type Result struct {
	Entries []Entry
	Errors  []error
}

// Scan walks root recursively and returns every image file above the size
// floor whose name does not match the junk pattern. Hidden directories are
// skipped. Unreadable subtrees are recorded as non-fatal errors and the walk
// continues. Output is sorted by path for deterministic downstream behavior.
func Scan(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !imageExts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		if junkPattern.MatchString(name) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", path, err))
			return nil
		}
		if fi.Size() < minSize {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Entries = append(result.Entries, Entry{
			Path:    absPath,
			Name:    name,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Path < result.Entries[j].Path
	})
	return result, nil
}
