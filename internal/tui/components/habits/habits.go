package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zerefez/habitcal/internal/models"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID string
}

type MissHabitMsg struct {
	ID string
}

// Item is one habit row. Status is the latest entry for today, if any.
type Item struct {
	Habit    models.Habit
	Streak   models.StreakInfo
	Expected bool
	Logged   bool
	Done     bool
}

func (i Item) Title() string {
	switch {
	case i.Logged && i.Done:
		return "✓ " + i.Habit.Name
	case i.Logged:
		return "✗ " + i.Habit.Name
	case i.Expected:
		return "○ " + i.Habit.Name
	default:
		return "  " + i.Habit.Name
	}
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | streak %d (best %d)", i.Habit.Frequency, i.Streak.CurrentStreak, i.Streak.LongestStreak)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add  key.Binding
	Mark key.Binding
	Miss key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Miss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "mark missed"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetShowStatusBar(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

// Selected returns the highlighted habit, if any.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

// Filtering reports whether the list is capturing keys for its filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Miss):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MissHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Mark, m.keys.Miss}
}
