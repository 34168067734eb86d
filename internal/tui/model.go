package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/logger"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage"
	"github.com/zerefez/habitcal/internal/tracker"
	"github.com/zerefez/habitcal/internal/tui/components/habits"
	"github.com/zerefez/habitcal/internal/utils"
)

const (
	defaultListWidth  = 40
	defaultListHeight = 16
)

type Model struct {
	store     storage.Provider
	today     time.Time
	year      int
	month     time.Month
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	habits    habits.Model
	calendar  []models.CalendarDay
	form      *huh.Form
	habitForm *HabitFormModel
	missForm  *MissFormModel
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

// NewModel builds the TUI over store. today is fixed for the session.
func NewModel(store storage.Provider, today time.Time) Model {
	today = utils.NormalizeDate(today)
	m := Model{
		store:  store,
		today:  today,
		year:   today.Year(),
		month:  today.Month(),
		state:  constants.StateHabits,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		habits: habits.New(nil, defaultListWidth, defaultListHeight),
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Mark, m.keys.Miss, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PrevMonth, m.keys.NextMonth},
		{m.keys.Add, m.keys.Mark, m.keys.Miss},
		{m.keys.Help, m.keys.Quit},
	}
}

// reload re-reads habits and today's entries and recomputes streaks.
func (m *Model) reload() {
	list, err := m.store.GetAllHabits(false, false)
	if err != nil {
		m.err = err
		return
	}
	todayEntries, err := m.store.GetHabitEntriesForDay(utils.FormatDate(m.today))
	if err != nil {
		m.err = err
		return
	}

	items := make([]habits.Item, 0, len(list))
	for _, h := range list {
		start, err := utils.ParseDate(h.StartDate)
		if err != nil {
			logger.Warn("Skipping habit with invalid start date", "habit", h.Name, "error", err)
			continue
		}
		entries, err := m.store.GetAllHabitEntries(h.ID)
		if err != nil {
			m.err = err
			return
		}

		latest, logged := tracker.LatestEntriesByDay(h.ID, todayEntries)[m.today]
		items = append(items, habits.Item{
			Habit:    h,
			Streak:   tracker.CalculateStreakInfo(h.ID, entries, start, h.Frequency, m.today),
			Expected: tracker.ShouldTrackOnDate(start, h.Frequency, m.today),
			Logged:   logged,
			Done:     logged && latest.Completed,
		})
	}
	m.habits.SetItems(items)
	m.refreshCalendar()
}

// refreshCalendar rebuilds the month view for the selected habit.
func (m *Model) refreshCalendar() {
	item, ok := m.habits.Selected()
	if !ok {
		m.calendar = nil
		return
	}
	start, err := utils.ParseDate(item.Habit.StartDate)
	if err != nil {
		m.calendar = nil
		return
	}

	first := utils.Date(m.year, m.month, 1)
	last := utils.Date(m.year, m.month, utils.DaysInMonth(m.year, m.month))
	entries, err := m.store.GetHabitEntriesForHabit(item.Habit.ID, utils.FormatDate(first), utils.FormatDate(last))
	if err != nil {
		m.err = err
		return
	}
	m.calendar = tracker.BuildMonthView(item.Habit.ID, entries, m.year, m.month, start, item.Habit.Frequency, m.today)
}

func (m *Model) shiftMonth(delta int) {
	t := utils.Date(m.year, m.month, 1).AddDate(0, delta, 0)
	m.year, m.month = t.Year(), t.Month()
	m.refreshCalendar()
}
