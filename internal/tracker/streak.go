package tracker

import (
	"time"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

// CalculateStreakInfo derives streak and weekly statistics for a habit.
// It never fails: missing data yields zero values.
func CalculateStreakInfo(habitID string, entries []models.HabitEntry, start time.Time, freq models.Frequency, today time.Time) models.StreakInfo {
	start = utils.NormalizeDate(start)
	today = utils.NormalizeDate(today)

	completed := CompletedDays(habitID, entries)

	var info models.StreakInfo
	info.ExpectedThisWeek, info.CompletedThisWeek = weeklyCounts(completed, start, freq, today)
	info.CompletionRate = percent(info.CompletedThisWeek, info.ExpectedThisWeek)

	if len(completed) == 0 {
		return info
	}

	info.CurrentStreak = currentStreak(completed, start, freq, today)
	info.LongestStreak = longestStreak(completed, start, freq, today)

	var last time.Time
	for day := range completed {
		if day.After(last) {
			last = day
		}
	}
	info.LastCompletionDate = &last

	return info
}

// currentStreak walks backward from the anchor day counting completed
// expected days. Days the habit is not expected are skipped.
func currentStreak(completed map[time.Time]bool, start time.Time, freq models.Frequency, today time.Time) int {
	anchor, ok := streakAnchor(completed, start, freq, today)
	if !ok {
		return 0
	}

	streak := 0
	for d := anchor; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if !ShouldTrackOnDate(start, freq, d) {
			continue
		}
		if !completed[d] {
			break
		}
		streak++
	}
	return streak
}

// streakAnchor picks the day the current streak is counted back from: today
// when it is completed, otherwise the most recent expected day before today.
// A pending expected day today does not break the streak.
func streakAnchor(completed map[time.Time]bool, start time.Time, freq models.Frequency, today time.Time) (time.Time, bool) {
	if completed[today] {
		return today, true
	}

	for i := 1; i <= constants.AnchorLookbackDays; i++ {
		d := today.AddDate(0, 0, -i)
		if d.Before(start) {
			break
		}
		if ShouldTrackOnDate(start, freq, d) {
			return d, true
		}
	}
	return time.Time{}, false
}

func longestStreak(completed map[time.Time]bool, start time.Time, freq models.Frequency, today time.Time) int {
	longest, run := 0, 0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if !ShouldTrackOnDate(start, freq, d) {
			continue
		}
		if completed[d] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// weeklyCounts covers the trailing window today-6 through today. It is kept
// separate from CountExpected.
func weeklyCounts(completed map[time.Time]bool, start time.Time, freq models.Frequency, today time.Time) (expected, done int) {
	for i := 0; i < constants.WeekWindowDays; i++ {
		d := today.AddDate(0, 0, -i)
		if !ShouldTrackOnDate(start, freq, d) {
			continue
		}
		expected++
		if completed[d] {
			done++
		}
	}
	return expected, done
}
