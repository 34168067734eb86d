package tracker

import (
	"time"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

// BuildMonthView projects the status of every day of the given month.
// Days without an entry that were expected strictly before today are
// reported as expected-missed.
func BuildMonthView(habitID string, entries []models.HabitEntry, year int, month time.Month, start time.Time, freq models.Frequency, today time.Time) []models.CalendarDay {
	first := utils.Date(year, month, 1)
	last := utils.Date(year, month, utils.DaysInMonth(year, month))
	return BuildRangeView(habitID, entries, start, freq, first, last, today)
}

// BuildRangeView projects day statuses for every day from from through to,
// inclusive, with the same rules as BuildMonthView.
func BuildRangeView(habitID string, entries []models.HabitEntry, start time.Time, freq models.Frequency, from, to, today time.Time) []models.CalendarDay {
	from = utils.NormalizeDate(from)
	to = utils.NormalizeDate(to)
	today = utils.NormalizeDate(today)
	latest := LatestEntriesByDay(habitID, entries)

	var days []models.CalendarDay
	if !from.After(to) {
		days = make([]models.CalendarDay, 0, utils.DaysBetween(from, to)+1)
	}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		cd := models.CalendarDay{
			Date:          date,
			DayOfMonth:    date.Day(),
			DayOfWeek:     int(date.Weekday()),
			IsExpectedDay: ShouldTrackOnDate(start, freq, date),
		}

		entry, hasEntry := latest[date]
		switch {
		case hasEntry && entry.Completed:
			cd.Status = models.DayStatusCompleted
		case hasEntry:
			cd.Status = models.DayStatusMissed
		case cd.IsExpectedDay && date.Before(today):
			cd.Status = models.DayStatusExpectedMissed
		default:
			cd.Status = models.DayStatusNoEntry
		}
		if hasEntry {
			cd.Reason = entry.Reason
		}

		days = append(days, cd)
	}
	return days
}

// WeekRows groups a month view into Sunday-first rows of seven cells.
// Cells before the first and after the last day of the month are nil.
func WeekRows(days []models.CalendarDay) [][]*models.CalendarDay {
	if len(days) == 0 {
		return nil
	}

	var rows [][]*models.CalendarDay
	row := make([]*models.CalendarDay, 7)
	for i := range days {
		d := &days[i]
		row[d.DayOfWeek] = d
		if d.DayOfWeek == 6 {
			rows = append(rows, row)
			row = make([]*models.CalendarDay, 7)
		}
	}
	if days[len(days)-1].DayOfWeek != 6 {
		rows = append(rows, row)
	}
	return rows
}
