// Package planner computes per-day selection quotas: how many items a day may
// keep and the minimum time spacing between picks.
package planner

import (
	"time"

	"github.com/harrison/daypick/internal/models"
)

// MinKeepAll is the threshold below which a day is never thinned: every item
// is kept regardless of spacing, hour, or category quotas.
const MinKeepAll = 10

// DefaultDayCap caps the number of items kept per day unless overridden.
const DefaultDayCap = 50

// ratioStep maps a day-count upper bound to a keep ratio. The table is
// scanned ascending; the first step whose limit exceeds the day's total wins.
type ratioStep struct {
	Limit int
	Ratio int
}

// intervalStep maps a day-count upper bound to a minimum spacing floor.
// Denser days get coarser floors: high-volume days are assumed to contain
// continuous-shooting bursts, and a larger gap avoids near-duplicate picks.
type intervalStep struct {
	Limit    int
	Interval time.Duration
}

var ratioSteps = []ratioStep{
	{Limit: 100, Ratio: 2},
	{Limit: 500, Ratio: 3},
	{Limit: 1000, Ratio: 4},
}

// maxRatio applies to days at or beyond the last ratio step.
const maxRatio = 5

var intervalSteps = []intervalStep{
	{Limit: 50, Interval: 10 * time.Second},
	{Limit: 100, Interval: 30 * time.Second},
	{Limit: 500, Interval: 2 * time.Minute},
	{Limit: 1000, Interval: 3 * time.Minute},
}

// maxInterval applies to days at or beyond the last interval step.
const maxInterval = 4 * time.Minute

// Plan computes the selection plan for one day. dayCap <= 0 selects the
// default cap. Plan is pure: the result depends only on its arguments and
// the static step tables.
func Plan(dayKey string, totalCount, dayCap int) models.SelectionPlan {
	if dayCap <= 0 {
		dayCap = DefaultDayCap
	}

	target := totalCount
	if totalCount >= MinKeepAll {
		ratio := ratioFor(totalCount)
		target = (totalCount + ratio - 1) / ratio // ceil(total/ratio)
		if target > dayCap {
			target = dayCap
		}
	}
	if target > totalCount {
		target = totalCount
	}

	return models.SelectionPlan{
		DayKey:      dayKey,
		TotalCount:  totalCount,
		TargetCount: target,
		MinInterval: intervalFor(totalCount),
	}
}

func ratioFor(totalCount int) int {
	for _, step := range ratioSteps {
		if totalCount < step.Limit {
			return step.Ratio
		}
	}
	return maxRatio
}

func intervalFor(totalCount int) time.Duration {
	for _, step := range intervalSteps {
		if totalCount < step.Limit {
			return step.Interval
		}
	}
	return maxInterval
}
