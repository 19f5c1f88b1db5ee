package domain

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// StreakResult is the derived completion state for one user. It is
// recomputed on demand from the activity log and never persisted.
type StreakResult struct {
	UserID         string `json:"user_id"`
	CompletedToday bool   `json:"completed_today"`
	Streak         int    `json:"streak"`
}

// CompletedToday reports whether at least one activity falls on the same UTC
// calendar day as now. Time-of-day and duplicate records are irrelevant.
func CompletedToday(activities []*Activity, now time.Time) bool {
	today := now.UTC().Format(dayLayout)
	for _, a := range activities {
		if a == nil || a.PerformedAt.IsZero() {
			continue
		}
		if a.PerformedAt.UTC().Format(dayLayout) == today {
			return true
		}
	}
	return false
}

// StreakLength counts consecutive calendar days with at least one activity,
// walking backwards from the most recent logged day. A streak is alive as
// long as the most recent day is today or yesterday relative to now: someone
// who logged yesterday keeps their streak until today ends. The first gap in
// the walk terminates the count; older fragments are ignored.
//
// The result is independent of input order and of duplicate same-day
// records. Records with a zero timestamp are skipped rather than breaking
// the whole computation.
func StreakLength(activities []*Activity, now time.Time) int {
	if len(activities) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	var days []time.Time

	for _, a := range activities {
		if a == nil || a.PerformedAt.IsZero() {
			continue
		}
		key := a.PerformedAt.UTC().Format(dayLayout)
		if !seen[key] {
			seen[key] = true
			d, _ := time.Parse(dayLayout, key)
			days = append(days, d)
		}
	}

	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := now.UTC().Truncate(24 * time.Hour)
	mostRecent := days[0]

	// Grace window: a last log two or more days old means the streak reset.
	if today.Sub(mostRecent).Hours()/24 > 1 {
		return 0
	}

	streak := 1
	expected := mostRecent
	for i := 1; i < len(days); i++ {
		if expected.Sub(days[i]).Hours() == 24 {
			streak++
			expected = days[i]
		} else {
			break
		}
	}

	return streak
}

// ComputeStreak bundles both completion checks for one user.
func ComputeStreak(userID string, activities []*Activity, now time.Time) StreakResult {
	return StreakResult{
		UserID:         userID,
		CompletedToday: CompletedToday(activities, now),
		Streak:         StreakLength(activities, now),
	}
}
