package models

import "time"

// SelectionPlan is the quota planner's output for one day: how many items to
// keep and the minimum spacing between picks. It is a pure function of the
// day's total count and static configuration.
type SelectionPlan struct {
	DayKey      string
	TotalCount  int
	TargetCount int
	MinInterval time.Duration
}

// DaySelection pairs a day's plan with the items the selection engine picked.
// Picked holds a time-ordered subset of the day bucket; its length never
// exceeds the plan's target count.
type DaySelection struct {
	Plan   SelectionPlan
	Picked []MediaItem
}

// CopyInstruction tells the copy executor to place one source file under the
// destination year/month directory.
type CopyInstruction struct {
	Source    string `json:"source"`
	DestYear  string `json:"dest_year"`
	DestMonth string `json:"dest_month"`
}
