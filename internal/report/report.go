// Package report aggregates selection results into the hierarchical output
// document: before/after counts at year/month/day granularity plus a
// flattened per-month file listing.
package report

import (
	"sort"
	"time"

	"github.com/harrison/daypick/internal/models"
)

// DayStats holds before/after counts for one calendar day.
type DayStats struct {
	Total    int `json:"total"`
	Selected int `json:"selected"`
}

// MonthStats holds before/after counts for one month and its days.
type MonthStats struct {
	Total    int                  `json:"total"`
	Selected int                  `json:"selected"`
	Days     map[string]*DayStats `json:"days"`
}

// YearStats holds before/after counts for one year and its months.
type YearStats struct {
	Total    int                    `json:"total"`
	Selected int                    `json:"selected"`
	Months   map[string]*MonthStats `json:"months"`
}

// MonthListing is the flattened selected-file list for one month.
type MonthListing struct {
	Total    int      `json:"total"`
	Selected int      `json:"selected"`
	Files    []string `json:"files"`
}

// Document is the full report written as picked_<timestamp>.json.
//
// Stats covers every year, month, and day present in the source data, even
// with zero selections. Listing covers only months with at least one selected
// file. Counts sum consistently bottom-up: a year's selected count equals the
// sum over its months, which equals the sum over their days, and a listing
// month's file count equals the corresponding stats entry.
type Document struct {
	RunID        string                              `json:"run_id"`
	GeneratedAt  time.Time                           `json:"generated_at"`
	Root         string                              `json:"root,omitempty"`
	NoDateCount  int                                 `json:"no_date_count"`
	ExcludedDirs []string                            `json:"excluded_dirs,omitempty"`
	Stats        map[string]*YearStats               `json:"stats"`
	Listing      map[string]map[string]*MonthListing `json:"listing"`
}

// Build assembles the report from the day buckets and per-day selections.
// The consistency invariants hold by construction: every count is accumulated
// from the same per-day walk.
func Build(runID string, buckets []models.DayBucket, selections map[string][]models.MediaItem) *Document {
	doc := &Document{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Stats:       make(map[string]*YearStats),
		Listing:     make(map[string]map[string]*MonthListing),
	}

	for _, bucket := range buckets {
		year, month, day := splitDayKey(bucket.DayKey)
		picked := selections[bucket.DayKey]

		ys := doc.Stats[year]
		if ys == nil {
			ys = &YearStats{Months: make(map[string]*MonthStats)}
			doc.Stats[year] = ys
		}
		ms := ys.Months[month]
		if ms == nil {
			ms = &MonthStats{Days: make(map[string]*DayStats)}
			ys.Months[month] = ms
		}
		ds := ms.Days[day]
		if ds == nil {
			ds = &DayStats{}
			ms.Days[day] = ds
		}

		total := len(bucket.Items)
		selected := len(picked)
		ds.Total += total
		ds.Selected += selected
		ms.Total += total
		ms.Selected += selected
		ys.Total += total
		ys.Selected += selected

		if selected > 0 {
			months := doc.Listing[year]
			if months == nil {
				months = make(map[string]*MonthListing)
				doc.Listing[year] = months
			}
			ml := months[month]
			if ml == nil {
				ml = &MonthListing{}
				months[month] = ml
			}
			for _, item := range picked {
				ml.Files = append(ml.Files, item.Path)
			}
			ml.Selected += selected
		}
	}

	// Listing totals mirror the stats subtree for the months that appear.
	for year, months := range doc.Listing {
		for month, ml := range months {
			ml.Total = doc.Stats[year].Months[month].Total
			sort.Strings(ml.Files)
		}
	}

	return doc
}

// SelectedCount returns the total number of selected files in the document.
func (d *Document) SelectedCount() int {
	n := 0
	for _, ys := range d.Stats {
		n += ys.Selected
	}
	return n
}

// TotalCount returns the total number of source files in the document.
func (d *Document) TotalCount() int {
	n := 0
	for _, ys := range d.Stats {
		n += ys.Total
	}
	return n
}

// splitDayKey splits "YYYY-MM-DD" into its year, month, and day keys
// ("YYYY", "YYYY-MM", "YYYY-MM-DD"). Malformed keys fall back to the key
// itself at every level rather than panicking.
func splitDayKey(dayKey string) (year, month, day string) {
	if len(dayKey) < 10 {
		return dayKey, dayKey, dayKey
	}
	return dayKey[:4], dayKey[:7], dayKey
}
