package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/tui/components/habits"
	"github.com/zerefez/habitcal/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateAddHabit || m.state == constants.StateMissReason {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habits.SetSize(max(msg.Width/2-4, 20), max(msg.Height-8, 5))
		return m, nil

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			StartDate: utils.FormatDate(m.today),
			Frequency: models.FrequencyDaily,
		}
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habits.MarkHabitMsg:
		m.addEntry(msg.ID, true, "")
		return m, nil

	case habits.MissHabitMsg:
		m.missForm = &MissFormModel{HabitID: msg.ID}
		m.form = NewMissForm(m.missForm)
		m.state = constants.StateMissReason
		return m, m.form.Init()

	case tea.KeyMsg:
		if !m.habits.Filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.PrevMonth):
				m.shiftMonth(-1)
				return m, nil
			case key.Matches(msg, m.keys.NextMonth):
				m.shiftMonth(1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.habits, cmd = m.habits.Update(msg)
	m.refreshCalendar()
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == constants.StateAddHabit {
			m.saveHabit()
		} else {
			m.addEntry(m.missForm.HabitID, false, strings.TrimSpace(m.missForm.Reason))
		}
		m.state = constants.StateHabits
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, cmd
}

func (m *Model) saveHabit() {
	name := strings.TrimSpace(m.habitForm.Name)
	if _, err := m.store.GetHabitByName(name); err == nil {
		m.err = fmt.Errorf("habit with name %q already exists", name)
		return
	}
	start, err := utils.ParseDate(strings.TrimSpace(m.habitForm.StartDate))
	if err != nil {
		m.err = err
		return
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: utils.FormatDate(start),
		Frequency: m.habitForm.Frequency,
		CreatedAt: time.Now(),
	}
	if err := m.store.AddHabit(habit); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Added habit %s", habit.Name)
	m.reload()
}

// addEntry appends an entry for today; the newest entry decides the day.
func (m *Model) addEntry(habitID string, completed bool, reason string) {
	now := time.Now()
	_, err := m.store.AddHabitEntry(models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Day:       utils.FormatDate(m.today),
		Completed: completed,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	if completed {
		m.status = "Marked done for today"
	} else {
		m.status = "Marked missed for today"
	}
	m.reload()
}
