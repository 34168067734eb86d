// Package calendar renders a habit's month view as a lipgloss grid. It is
// shared by the `habit calendar` command and the TUI.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/tracker"
	"github.com/zerefez/habitcal/internal/utils"
)

const cellWidth = 4

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	completedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	missedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	expectedMissedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	expectedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	offStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Marker is the single-character suffix drawn after a day number so the grid
// stays readable without colour.
func Marker(day models.CalendarDay) string {
	switch day.Status {
	case models.DayStatusCompleted:
		return "x"
	case models.DayStatusMissed:
		return "-"
	case models.DayStatusExpectedMissed:
		return "!"
	default:
		if day.IsExpectedDay {
			return "."
		}
		return " "
	}
}

func styleFor(day models.CalendarDay) lipgloss.Style {
	switch day.Status {
	case models.DayStatusCompleted:
		return completedStyle
	case models.DayStatusMissed:
		return missedStyle
	case models.DayStatusExpectedMissed:
		return expectedMissedStyle
	default:
		if day.IsExpectedDay {
			return expectedStyle
		}
		return offStyle
	}
}

// Render draws the month as a title line, a weekday header and one line per
// week. today is underlined.
func Render(year int, month time.Month, days []models.CalendarDay, today time.Time) string {
	today = utils.NormalizeDate(today)
	width := cellWidth * len(weekdays)

	var b strings.Builder
	title := fmt.Sprintf("%s %d", month, year)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n")

	for _, wd := range weekdays {
		b.WriteString(weekdayStyle.Width(cellWidth).Render(wd))
	}

	for _, row := range tracker.WeekRows(days) {
		b.WriteString("\n")
		for _, cell := range row {
			if cell == nil {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			style := styleFor(*cell).Width(cellWidth)
			if cell.Date.Equal(today) {
				style = style.Underline(true)
			}
			b.WriteString(style.Render(fmt.Sprintf("%2d%s", cell.DayOfMonth, Marker(*cell))))
		}
	}
	return b.String()
}

// Legend explains the day markers.
func Legend() string {
	return strings.Join([]string{
		completedStyle.Render("x done"),
		missedStyle.Render("- missed"),
		expectedMissedStyle.Render("! not logged"),
		expectedStyle.Render(". expected"),
	}, "  ")
}
