package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/daypick/internal/scanner"
)

// entriesForDay fabricates candidate entries one minute apart on a day.
func entriesForDay(dir, date string, n int) []scanner.Entry {
	entries := make([]scanner.Entry, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("IMG_%s_%02d%02d00.jpg", date, 8+i/60, i%60)
		entries[i] = scanner.Entry{
			Path: filepath.Join(dir, name),
			Name: name,
			Size: int64(1000 + i),
		}
	}
	return entries
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{RunID: "test-run", MaxConcurrency: 4}

	var entries []scanner.Entry
	entries = append(entries, entriesForDay("/photos", "20240612", 120)...)
	entries = append(entries, entriesForDay("/photos", "20240613", 3)...)
	entries = append(entries, scanner.Entry{Path: "/photos/holiday.jpg", Name: "holiday.jpg", Size: 999})

	result, err := p.Run(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, 1, result.NoDateCount, "the dateless entry is dropped and counted")
	require.Len(t, result.Buckets, 2)

	// Thinned day respects the quota; small day is kept whole.
	assert.LessOrEqual(t, len(result.Selections["2024-06-12"]), 40)
	assert.Greater(t, len(result.Selections["2024-06-12"]), 0)
	assert.Len(t, result.Selections["2024-06-13"], 3)

	// Plans echo the planner's math.
	assert.Equal(t, 40, result.Plans["2024-06-12"].TargetCount)
	assert.Equal(t, 3, result.Plans["2024-06-13"].TargetCount)

	// Copy plan covers exactly the selected items.
	selected := len(result.Selections["2024-06-12"]) + len(result.Selections["2024-06-13"])
	assert.Len(t, result.CopyPlan, selected)
	for _, instr := range result.CopyPlan {
		assert.Equal(t, "2024", instr.DestYear)
	}

	// Report agrees with the selections.
	require.NotNil(t, result.Document)
	assert.Equal(t, "test-run", result.Document.RunID)
	assert.Equal(t, selected, result.Document.SelectedCount())
	assert.Equal(t, 123, result.Document.TotalCount())
	assert.Equal(t, 1, result.Document.NoDateCount)
}

func TestPipeline_Deterministic(t *testing.T) {
	entries := entriesForDay("/photos", "20240612", 200)

	run := func() map[string][]string {
		p := &Pipeline{RunID: "det", MaxConcurrency: 8}
		result, err := p.Run(context.Background(), entries)
		require.NoError(t, err)
		paths := make(map[string][]string)
		for day, items := range result.Selections {
			for _, item := range items {
				paths[day] = append(paths[day], item.Path)
			}
		}
		return paths
	}

	first := run()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run(), "run %d differed", i+2)
	}
}

func TestPipeline_ExclusionFilter(t *testing.T) {
	root := t.TempDir()
	keepDir := filepath.Join(root, "keep")
	dropDir := filepath.Join(root, "drop")
	require.NoError(t, os.MkdirAll(keepDir, 0755))
	require.NoError(t, os.MkdirAll(dropDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dropDir, ".noindex"), nil, 0644))

	entries := append(
		entriesForDay(keepDir, "20240612", 4),
		entriesForDay(dropDir, "20240612", 4)...,
	)

	p := &Pipeline{RunID: "excl", Root: root, MaxConcurrency: 2}
	result, err := p.Run(context.Background(), entries)
	require.NoError(t, err)

	require.Len(t, result.Buckets, 1)
	assert.Len(t, result.Buckets[0].Items, 4, "excluded directory's files are filtered out")
	assert.Contains(t, result.ExcludedDirs, dropDir)
	for _, item := range result.Selections["2024-06-12"] {
		assert.NotContains(t, item.Path, "drop")
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Pipeline{RunID: "cancel", MaxConcurrency: 2}
	_, err := p.Run(ctx, entriesForDay("/photos", "20240612", 50))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_EmptyInput(t *testing.T) {
	p := &Pipeline{RunID: "empty"}
	result, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Buckets)
	assert.Empty(t, result.CopyPlan)
	assert.Zero(t, result.Document.SelectedCount())
}
