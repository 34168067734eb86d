package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/tui/calendar"
	"github.com/zerefez/habitcal/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddHabit, constants.StateMissReason:
		content = docStyle.Render(m.form.View())
	default:
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			paneStyle.Render(m.habits.View()),
			paneStyle.Render(m.viewCalendar()),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("habitcal | %s", utils.FormatDate(m.today))),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewCalendar() string {
	item, ok := m.habits.Selected()
	if !ok {
		return mutedStyle.Render("Select a habit to see its calendar.")
	}

	s := item.Streak
	summary := fmt.Sprintf("%s (%s)\nstreak %d | best %d | week %d/%d (%d%%)",
		item.Habit.Name, item.Habit.Frequency,
		s.CurrentStreak, s.LongestStreak,
		s.CompletedThisWeek, s.ExpectedThisWeek, s.CompletionRate)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		summary,
		"",
		calendar.Render(m.year, m.month, m.calendar, m.today),
		"",
		calendar.Legend(),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
