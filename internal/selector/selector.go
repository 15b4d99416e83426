// Package selector implements the bounded selection engine: given one day's
// time-ordered bucket and a target count, it picks items spread evenly across
// the day subject to per-hour caps, a per-day pet-photo quota, and a minimum
// spacing between picks, preferring larger files within each search window.
package selector

import (
	"regexp"
	"sort"

	"github.com/harrison/daypick/internal/models"
	"github.com/harrison/daypick/internal/planner"
)

// MaxPerHour caps how many items may be picked from any single hour of a day.
const MaxPerHour = 10

// MaxPetPerDay caps how many pet-tagged items may be picked per day.
const MaxPetPerDay = 3

// petPattern tags likely pet photos by path keywords.
var petPattern = regexp.MustCompile(`(?i)(cat|kitten|dog|puppy|pet)`)

// dayContext holds the mutable state of one Select call. It is constructed
// fresh per day and never shared, so days can be selected in parallel.
type dayContext struct {
	plan       models.SelectionPlan
	items      []models.MediaItem
	taken      map[int]bool
	hourCounts map[string]int
	petCount   int
	picked     []models.MediaItem
}

// Select picks up to plan.TargetCount items from a time-ordered day bucket.
// Days below the keep-all threshold are returned whole. The scan is greedy
// and non-backtracking: a window with no eligible candidate skips its slot,
// which deliberately under-selects rather than erroring. Identical input
// always produces identical output.
func Select(bucket []models.MediaItem, plan models.SelectionPlan) []models.MediaItem {
	n := len(bucket)
	if plan.TargetCount <= 0 || n == 0 {
		return nil
	}
	// Re-check of the planner invariant: small days are kept whole.
	if n < planner.MinKeepAll {
		out := make([]models.MediaItem, n)
		copy(out, bucket)
		return out
	}

	target := plan.TargetCount
	if target > n {
		target = n
	}

	// Search radius around each ideal slot index.
	radius := n / target / 2
	if radius < 1 {
		radius = 1
	}

	dc := &dayContext{
		plan:       plan,
		items:      bucket,
		taken:      make(map[int]bool, target),
		hourCounts: make(map[string]int),
	}

	for slot := 0; slot < target; slot++ {
		// idealIdx = floor((slot+0.5) * n / target), kept in integer math.
		ideal := (2*slot + 1) * n / (2 * target)

		lo := ideal - radius
		if lo < 0 {
			lo = 0
		}
		hi := ideal + radius
		if hi > n-1 {
			hi = n - 1
		}

		best := -1
		for idx := lo; idx <= hi; idx++ {
			if dc.taken[idx] {
				continue
			}
			if !dc.eligible(bucket[idx]) {
				continue
			}
			// Largest file wins; first encountered wins ties.
			if best == -1 || bucket[idx].Size > bucket[best].Size {
				best = idx
			}
		}
		if best == -1 {
			// Window exhausted by hour/pet/spacing budgets: skip the slot.
			continue
		}
		dc.pick(best)
	}

	// Scan order is by slot index; the result is reported in time order.
	sort.Slice(dc.picked, func(i, j int) bool {
		return dc.picked[i].Taken.Before(dc.picked[j].Taken)
	})
	return dc.picked
}

// eligible checks the hour cap, the pet quota, and the minimum spacing
// against every already-picked item.
func (dc *dayContext) eligible(item models.MediaItem) bool {
	if dc.hourCounts[hourKey(item)] >= MaxPerHour {
		return false
	}
	if dc.petCount >= MaxPetPerDay && IsPet(item.Path) {
		return false
	}
	if dc.plan.MinInterval > 0 {
		for _, p := range dc.picked {
			gap := item.Taken.Sub(p.Taken)
			if gap < 0 {
				gap = -gap
			}
			if gap < dc.plan.MinInterval {
				return false
			}
		}
	}
	return true
}

func (dc *dayContext) pick(idx int) {
	item := dc.items[idx]
	dc.taken[idx] = true
	dc.hourCounts[hourKey(item)]++
	if IsPet(item.Path) {
		dc.petCount++
	}
	dc.picked = append(dc.picked, item)
}

// IsPet reports whether a path matches the pet keyword pattern.
func IsPet(path string) bool {
	return petPattern.MatchString(path)
}

// hourKey buckets an item by its calendar day and hour.
func hourKey(item models.MediaItem) string {
	return item.Taken.Format("2006-01-02-15")
}
