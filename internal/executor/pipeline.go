// Package executor runs the selection pipeline end to end: exclusion
// filtering, date extraction and grouping, bounded-parallel per-day
// selection, report assembly, and copy-plan execution.
package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/harrison/daypick/internal/datestamp"
	"github.com/harrison/daypick/internal/exclude"
	"github.com/harrison/daypick/internal/models"
	"github.com/harrison/daypick/internal/planner"
	"github.com/harrison/daypick/internal/report"
	"github.com/harrison/daypick/internal/scanner"
	"github.com/harrison/daypick/internal/selector"
)

// Logger defines the logging behavior the pipeline needs. The concrete
// console logger satisfies it; nil disables logging.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogDayResult(plan models.SelectionPlan, picked int)
}

// Pipeline coordinates one selection run. Days are independent, so their
// plan+select calls are dispatched with bounded parallelism; all other
// stages are sequential.
type Pipeline struct {
	RunID          string
	Root           string // Scan root; empty for list-file input (no exclusion pass)
	DayCap         int
	MaxConcurrency int
	ExifFallback   bool
	Logger         Logger
}

// Result carries everything one run produced.
type Result struct {
	Buckets      []models.DayBucket
	Plans        map[string]models.SelectionPlan
	Selections   map[string][]models.MediaItem
	NoDateCount  int
	ExcludedDirs []string
	Document     *report.Document
	CopyPlan     []models.CopyInstruction
}

// Run executes the pipeline over the candidate entries. Per-item failures
// (unparseable dates) are dropped and counted, never fatal. Returns an error
// only when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, entries []scanner.Entry) (*Result, error) {
	result := &Result{
		Plans:      make(map[string]models.SelectionPlan),
		Selections: make(map[string][]models.MediaItem),
	}

	entries, excludedDirs := p.filterExcluded(ctx, entries)
	result.ExcludedDirs = excludedDirs

	items := p.extractDates(entries, result)
	result.Buckets = models.GroupByDay(items)

	if err := p.selectDays(ctx, result); err != nil {
		return nil, err
	}

	doc := report.Build(p.RunID, result.Buckets, result.Selections)
	doc.Root = p.Root
	doc.NoDateCount = result.NoDateCount
	doc.ExcludedDirs = result.ExcludedDirs
	result.Document = doc

	result.CopyPlan = buildCopyPlan(result.Buckets, result.Selections)
	return result, nil
}

// filterExcluded drops entries whose directory tree is excluded. List-file
// input has no scan root, so nothing is excluded.
func (p *Pipeline) filterExcluded(ctx context.Context, entries []scanner.Entry) ([]scanner.Entry, []string) {
	if p.Root == "" || len(entries) == 0 {
		return entries, nil
	}

	resolver := exclude.NewResolver(p.Root)

	seen := make(map[string]bool)
	var dirs []string
	for _, entry := range entries {
		dir := filepath.Dir(entry.Path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	resolver.ResolveAll(ctx, dirs, p.concurrency())

	included := entries[:0:0]
	for _, entry := range entries {
		if resolver.Excluded(filepath.Dir(entry.Path)) {
			continue
		}
		included = append(included, entry)
	}

	excludedDirs := resolver.ExcludedDirs()
	if p.Logger != nil && len(excludedDirs) > 0 {
		p.Logger.LogInfo(fmt.Sprintf("excluded %d directories, %d of %d files remain", len(excludedDirs), len(included), len(entries)))
	}
	return included, excludedDirs
}

// extractDates parses capture timestamps and drops entries without one,
// counting them for the summary.
func (p *Pipeline) extractDates(entries []scanner.Entry, result *Result) []models.MediaItem {
	var items []models.MediaItem
	for _, entry := range entries {
		stamp, ok := datestamp.Extract(entry.Name)
		if !ok && p.ExifFallback {
			stamp, ok = datestamp.FromEXIF(entry.Path)
		}
		if !ok {
			result.NoDateCount++
			if p.Logger != nil {
				p.Logger.LogDebug(fmt.Sprintf("no date in %s, dropped", entry.Name))
			}
			continue
		}
		items = append(items, models.MediaItem{
			Path:   entry.Path,
			Name:   entry.Name,
			Size:   entry.Size,
			Taken:  stamp.Taken,
			DayKey: stamp.DayKey,
		})
	}
	return items
}

// selectDays dispatches per-day plan+select with bounded parallelism. Each
// day's counters live inside its own Select call, so no selection state is
// shared across goroutines; only the result maps are, under a mutex.
func (p *Pipeline) selectDays(ctx context.Context, result *Result) error {
	concurrency := p.concurrency()
	semaphore := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, bucket := range result.Buckets {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(bucket models.DayBucket) {
			defer wg.Done()
			defer func() { <-semaphore }()

			plan := planner.Plan(bucket.DayKey, len(bucket.Items), p.DayCap)
			picked := selector.Select(bucket.Items, plan)

			mu.Lock()
			result.Plans[bucket.DayKey] = plan
			result.Selections[bucket.DayKey] = picked
			mu.Unlock()

			if p.Logger != nil {
				p.Logger.LogDayResult(plan, len(picked))
			}
		}(bucket)
	}
	wg.Wait()
	return ctx.Err()
}

func (p *Pipeline) concurrency() int {
	if p.MaxConcurrency < 1 {
		return 4
	}
	return p.MaxConcurrency
}

// buildCopyPlan flattens the selections into copy instructions, in day order
// so the plan is deterministic.
func buildCopyPlan(buckets []models.DayBucket, selections map[string][]models.MediaItem) []models.CopyInstruction {
	var plan []models.CopyInstruction
	for _, bucket := range buckets {
		for _, item := range selections[bucket.DayKey] {
			plan = append(plan, models.CopyInstruction{
				Source:    item.Path,
				DestYear:  item.YearKey(),
				DestMonth: item.MonthKey(),
			})
		}
	}
	return plan
}
