package selector

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/harrison/daypick/internal/datestamp"
	"github.com/harrison/daypick/internal/models"
	"github.com/harrison/daypick/internal/planner"
)

// makeBucket builds a time-ordered day bucket with items spaced by step,
// starting at the given hour. Sizes cycle so ties are rare.
func makeBucket(n int, start time.Time, step time.Duration) []models.MediaItem {
	items := make([]models.MediaItem, n)
	for i := 0; i < n; i++ {
		taken := start.Add(time.Duration(i) * step)
		items[i] = models.MediaItem{
			Path:   fmt.Sprintf("/photos/IMG_%04d.jpg", i),
			Name:   fmt.Sprintf("IMG_%04d.jpg", i),
			Size:   int64(1000 + (i*37)%500),
			Taken:  taken,
			DayKey: taken.Format("2006-01-02"),
		}
	}
	return items
}

func dayStart() time.Time {
	return time.Date(2024, 6, 12, 8, 0, 0, 0, datestamp.Location)
}

func TestSelect_SmallDayKeptWhole(t *testing.T) {
	bucket := makeBucket(3, dayStart(), time.Second)
	plan := planner.Plan("2024-06-12", len(bucket), 0)

	picked := Select(bucket, plan)
	if !reflect.DeepEqual(picked, bucket) {
		t.Errorf("small day should be returned unmodified: got %d items, want %d", len(picked), len(bucket))
	}
}

func TestSelect_ZeroTarget(t *testing.T) {
	bucket := makeBucket(20, dayStart(), time.Minute)
	picked := Select(bucket, models.SelectionPlan{TargetCount: 0})
	if len(picked) != 0 {
		t.Errorf("zero target should pick nothing, got %d", len(picked))
	}
}

func TestSelect_BoundsAndOrdering(t *testing.T) {
	// A busy day: 120 photos spread across the day, target 40, spacing 2m.
	bucket := makeBucket(120, dayStart(), 5*time.Minute)
	plan := planner.Plan("2024-06-12", 120, 0)
	if plan.TargetCount != 40 {
		t.Fatalf("plan target = %d, want 40", plan.TargetCount)
	}

	picked := Select(bucket, plan)
	if len(picked) == 0 || len(picked) > 40 {
		t.Fatalf("picked %d items, want 1..40", len(picked))
	}

	seen := make(map[string]bool)
	for i, item := range picked {
		if seen[item.Path] {
			t.Errorf("duplicate pick: %s", item.Path)
		}
		seen[item.Path] = true
		if i > 0 {
			gap := item.Taken.Sub(picked[i-1].Taken)
			if gap < 0 {
				t.Errorf("result not time-ordered at index %d", i)
			}
			if gap < plan.MinInterval {
				t.Errorf("gap %s below spacing floor %s", gap, plan.MinInterval)
			}
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	bucket := makeBucket(237, dayStart(), 90*time.Second)
	plan := planner.Plan("2024-06-12", len(bucket), 0)

	first := Select(bucket, plan)
	for i := 0; i < 5; i++ {
		again := Select(bucket, plan)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed from first run", i+2)
		}
	}
}

func TestSelect_HourCap(t *testing.T) {
	// 60 photos inside a single hour; without the cap the engine could pick
	// far more than MaxPerHour from it.
	bucket := makeBucket(60, dayStart(), 30*time.Second)
	plan := models.SelectionPlan{DayKey: "2024-06-12", TotalCount: 60, TargetCount: 30}

	picked := Select(bucket, plan)
	hourCounts := make(map[string]int)
	for _, item := range picked {
		hourCounts[item.Taken.Format("2006-01-02-15")]++
	}
	for hour, count := range hourCounts {
		if count > MaxPerHour {
			t.Errorf("hour %s has %d picks, cap is %d", hour, count, MaxPerHour)
		}
	}
}

func TestSelect_PetQuota(t *testing.T) {
	bucket := makeBucket(20, dayStart(), 10*time.Minute)
	for i := range bucket {
		bucket[i].Path = fmt.Sprintf("/photos/cat_%04d.jpg", i)
	}
	plan := models.SelectionPlan{DayKey: "2024-06-12", TotalCount: 20, TargetCount: 20}

	picked := Select(bucket, plan)
	pets := 0
	for _, item := range picked {
		if IsPet(item.Path) {
			pets++
		}
	}
	if pets > MaxPetPerDay {
		t.Errorf("%d pet picks, quota is %d", pets, MaxPetPerDay)
	}
}

func TestSelect_ClusteredBurstUnderSelects(t *testing.T) {
	// A burst: 25 photos inside one minute, target 5, spacing 10s.
	// The engine may legitimately return fewer than 5; every pairwise gap
	// must still respect the floor.
	bucket := makeBucket(25, dayStart(), 2*time.Second)
	plan := models.SelectionPlan{
		DayKey:      "2024-06-12",
		TotalCount:  25,
		TargetCount: 5,
		MinInterval: 10 * time.Second,
	}

	picked := Select(bucket, plan)
	if len(picked) > 5 {
		t.Fatalf("picked %d, want at most 5", len(picked))
	}
	for i := range picked {
		for j := i + 1; j < len(picked); j++ {
			gap := picked[j].Taken.Sub(picked[i].Taken)
			if gap < 0 {
				gap = -gap
			}
			if gap < plan.MinInterval {
				t.Errorf("pairwise gap %s below %s", gap, plan.MinInterval)
			}
		}
	}
}

func TestSelect_PrefersLargerFiles(t *testing.T) {
	bucket := makeBucket(10, dayStart(), time.Hour)
	for i := range bucket {
		bucket[i].Size = 100
	}
	bucket[7].Size = 99999

	plan := models.SelectionPlan{DayKey: "2024-06-12", TotalCount: 10, TargetCount: 1}
	picked := Select(bucket, plan)
	if len(picked) != 1 {
		t.Fatalf("picked %d items, want 1", len(picked))
	}
	if picked[0].Size != 99999 {
		t.Errorf("picked size %d, want the largest file in the window", picked[0].Size)
	}
}

func TestIsPet(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/photos/cat_001.jpg", true},
		{"/photos/My Dog/IMG_001.jpg", true},
		{"/photos/Kitten20240612.jpg", true},
		{"/photos/IMG_001.jpg", false},
		{"/photos/catalog.jpg", true}, // Known keyword-heuristic false positive
	}
	for _, tt := range tests {
		if got := IsPet(tt.path); got != tt.want {
			t.Errorf("IsPet(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
