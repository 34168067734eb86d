// Package tracker computes expected days, streaks and calendar views for
// habits. Every function is pure: callers pass "today" explicitly.
package tracker

import (
	"time"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

// ShouldTrackOnDate determines if a habit is expected on the candidate date
// based on its start date and frequency. Dates before the start are never
// expected; unknown frequencies behave as daily.
func ShouldTrackOnDate(start time.Time, freq models.Frequency, candidate time.Time) bool {
	start = utils.NormalizeDate(start)
	candidate = utils.NormalizeDate(candidate)

	if candidate.Before(start) {
		return false
	}

	daysSinceStart := utils.DaysBetween(start, candidate)
	wd := int(candidate.Weekday())
	startWd := int(start.Weekday())

	switch freq {
	case models.FrequencyDaily:
		return true
	case models.FrequencyEveryOtherDay:
		return daysSinceStart%2 == 0
	case models.FrequencyWeekdays:
		return wd >= int(time.Monday) && wd <= int(time.Friday)
	case models.FrequencyWeekends:
		return wd == int(time.Sunday) || wd == int(time.Saturday)
	case models.FrequencyWeekly:
		return wd == startWd
	case models.FrequencyTwiceWeekly:
		// Start day and three days later
		return wd == startWd || wd == (startWd+3)%7
	case models.FrequencyThreeTimesWeekly:
		return wd == startWd || wd == (startWd+2)%7 || wd == (startWd+4)%7
	case models.FrequencyMonthly:
		// Months without the start's day of month are skipped entirely
		return candidate.Day() == start.Day()
	default:
		return true
	}
}

// CountExpected counts the expected days between from and to, inclusive.
func CountExpected(start time.Time, freq models.Frequency, from, to time.Time) int {
	from = utils.NormalizeDate(from)
	to = utils.NormalizeDate(to)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if ShouldTrackOnDate(start, freq, d) {
			count++
		}
	}
	return count
}

// CompletionRateForRange reports how many expected days between from and to
// were completed. Completions on days the habit was not expected are ignored.
func CompletionRateForRange(habitID string, entries []models.HabitEntry, start time.Time, freq models.Frequency, from, to time.Time) models.RangeStats {
	from = utils.NormalizeDate(from)
	to = utils.NormalizeDate(to)

	stats := models.RangeStats{
		From:     from,
		To:       to,
		Expected: CountExpected(start, freq, from, to),
	}

	completed := CompletedDays(habitID, entries)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if completed[d] && ShouldTrackOnDate(start, freq, d) {
			stats.Completed++
		}
	}

	stats.CompletionRate = percent(stats.Completed, stats.Expected)
	return stats
}
