package tracker

import (
	"math"
	"time"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

// LatestEntriesByDay returns the authoritative entry for each day of a habit.
// Soft-deleted entries and entries with unparseable days are ignored. When
// several entries share a day the one with the greatest Seq wins, then the
// greatest UpdatedAt, then the one seen last.
func LatestEntriesByDay(habitID string, entries []models.HabitEntry) map[time.Time]models.HabitEntry {
	latest := make(map[time.Time]models.HabitEntry)
	for _, e := range entries {
		if e.HabitID != habitID || e.DeletedAt != nil {
			continue
		}
		day, err := utils.ParseDate(e.Day)
		if err != nil {
			continue
		}
		if prev, ok := latest[day]; ok && supersedes(prev, e) {
			continue
		}
		latest[day] = e
	}
	return latest
}

// supersedes reports whether a must be kept over b, which was seen later.
func supersedes(a, b models.HabitEntry) bool {
	if a.Seq != b.Seq {
		return a.Seq > b.Seq
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

// CompletedDays returns the set of days whose authoritative entry is completed.
func CompletedDays(habitID string, entries []models.HabitEntry) map[time.Time]bool {
	completed := make(map[time.Time]bool)
	for day, e := range LatestEntriesByDay(habitID, entries) {
		if e.Completed {
			completed[day] = true
		}
	}
	return completed
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
