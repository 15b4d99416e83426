// Package exclude decides, per directory, whether a candidate file's
// directory tree is opted out of selection. A directory is excluded when it
// (or any ancestor under the scan root) contains a marker file. Checks are
// memoized for the run and deduplicated with a single-flight in-flight map so
// concurrent probes of the same directory collapse into one.
package exclude

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DefaultMarkers are the files whose presence excludes a directory tree:
// an explicit do-not-index marker and a version-control ignore file (a
// directory carrying one is a project checkout, not a photo folder).
var DefaultMarkers = []string{".noindex", ".gitignore"}

// Resolver caches exclusion decisions for one run. The zero value is not
// usable; construct with NewResolver.
type Resolver struct {
	root    string
	markers []string

	mu       sync.Mutex
	resolved map[string]bool
	inflight map[string]chan struct{} // closed once the directory is resolved
}

// NewResolver creates a resolver rooted at the scan root. Directories at or
// above the root, and anything outside it, are never excluded. root should be
// an absolute, cleaned path.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root:     filepath.Clean(root),
		markers:  DefaultMarkers,
		resolved: make(map[string]bool),
		inflight: make(map[string]chan struct{}),
	}
}

// Excluded reports whether dir sits in an excluded tree. The ancestor chain
// inside the root is resolved top-down, so a descendant always observes its
// ancestor's fully resolved value. Safe for concurrent use.
func (r *Resolver) Excluded(dir string) bool {
	chain := r.chain(dir)
	excluded := false
	for _, d := range chain {
		excluded = r.resolveOne(d, excluded)
	}
	return excluded
}

// ResolveAll warms the cache for a set of directories with bounded
// parallelism. Directories are scheduled shortest-path-first so ancestors are
// resolved before descendants; correctness does not depend on this order, it
// only avoids redundant waiting. Stops early if ctx is cancelled.
func (r *Resolver) ResolveAll(ctx context.Context, dirs []string, concurrency int) {
	if concurrency < 1 {
		concurrency = 1
	}

	sorted := make([]string, len(dirs))
	copy(sorted, dirs)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) < len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for _, dir := range sorted {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case semaphore <- struct{}{}:
		}
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			r.Excluded(dir)
		}(dir)
	}
	wg.Wait()
}

// ExcludedDirs returns the sorted set of directories resolved as excluded so
// far, for reporting.
func (r *Resolver) ExcludedDirs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dirs []string
	for dir, excluded := range r.resolved {
		if excluded {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// chain returns dir's ancestor chain inside the root, root-first. An empty
// chain means dir is above or outside the root and therefore never excluded.
// Walking is an explicit loop up the parent segments, not recursion, so
// pathological path depths cannot overflow the stack.
func (r *Resolver) chain(dir string) []string {
	var chain []string
	d := filepath.Clean(dir)
	for {
		rel, err := filepath.Rel(r.root, d)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			break
		}
		chain = append(chain, d)
		if rel == "." {
			break
		}
		parent := filepath.Dir(d)
		if parent == d {
			// Filesystem root.
			break
		}
		d = parent
	}

	// Reverse to ancestor-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// resolveOne resolves a single directory with single-flight deduplication.
// An excluded parent short-circuits the probe: inheritance needs no disk
// access. Concurrent callers for the same directory attach to the pending
// computation's channel instead of probing again.
func (r *Resolver) resolveOne(dir string, parentExcluded bool) bool {
	r.mu.Lock()
	if v, ok := r.resolved[dir]; ok {
		r.mu.Unlock()
		return v
	}
	if ch, ok := r.inflight[dir]; ok {
		r.mu.Unlock()
		<-ch
		r.mu.Lock()
		v := r.resolved[dir]
		r.mu.Unlock()
		return v
	}
	ch := make(chan struct{})
	r.inflight[dir] = ch
	r.mu.Unlock()

	excluded := parentExcluded || r.probe(dir)

	r.mu.Lock()
	r.resolved[dir] = excluded
	delete(r.inflight, dir)
	r.mu.Unlock()
	close(ch)

	return excluded
}

// probe checks the directory for marker files. Any stat failure is fail-open:
// an unreadable directory is treated as not excluded, never as an error.
func (r *Resolver) probe(dir string) bool {
	for _, marker := range r.markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
