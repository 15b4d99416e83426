// Package models defines the core data types shared across the daypick
// pipeline: media items, day buckets, selection plans, and copy instructions.
package models

import (
	"sort"
	"time"
)

// MediaItem represents a single candidate media file with a parsed capture
// timestamp. Items are immutable once created; candidates whose filename
// carries no valid timestamp are never materialized as MediaItems.
type MediaItem struct {
	Path   string    // Absolute path of the file
	Name   string    // Base filename
	Size   int64     // File size in bytes (quality proxy for tie-breaking)
	Taken  time.Time // Capture timestamp in the fixed reference zone
	DayKey string    // Calendar day key, "YYYY-MM-DD"
}

// YearKey returns the year portion of the item's day key (e.g. "2024").
func (m MediaItem) YearKey() string {
	if len(m.DayKey) < 4 {
		return m.DayKey
	}
	return m.DayKey[:4]
}

// MonthKey returns the year-month portion of the item's day key (e.g. "2024-06").
func (m MediaItem) MonthKey() string {
	if len(m.DayKey) < 7 {
		return m.DayKey
	}
	return m.DayKey[:7]
}

// DayBucket holds all media items sharing one calendar day, ordered by
// capture time. Buckets are built once during grouping and read-only
// afterwards.
type DayBucket struct {
	DayKey string
	Items  []MediaItem
}

// SortByTime orders the bucket's items by capture timestamp ascending,
// breaking ties by path for deterministic output.
func (b *DayBucket) SortByTime() {
	sort.Slice(b.Items, func(i, j int) bool {
		if b.Items[i].Taken.Equal(b.Items[j].Taken) {
			return b.Items[i].Path < b.Items[j].Path
		}
		return b.Items[i].Taken.Before(b.Items[j].Taken)
	})
}

// GroupByDay builds day buckets from a flat item list. The returned buckets
// are sorted by day key and each bucket's items are time-ordered.
func GroupByDay(items []MediaItem) []DayBucket {
	byDay := make(map[string][]MediaItem)
	for _, item := range items {
		byDay[item.DayKey] = append(byDay[item.DayKey], item)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		bucket := DayBucket{DayKey: key, Items: byDay[key]}
		bucket.SortByTime()
		buckets = append(buckets, bucket)
	}
	return buckets
}
