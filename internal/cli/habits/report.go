package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/tracker"
	"github.com/zerefez/habitcal/internal/tui/calendar"
	"github.com/zerefez/habitcal/internal/utils"
)

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	todayStr := utils.FormatDate(today)
	entries, err := ctx.Store.GetHabitEntriesForDay(todayStr)
	if err != nil {
		return err
	}

	ctx.Printf("Habits for %s:\n\n", todayStr)
	expected, done := 0, 0
	var rest []string
	for _, habit := range habits {
		start, err := cli.HabitStart(habit)
		if err != nil {
			return err
		}
		latest, logged := tracker.LatestEntriesByDay(habit.ID, entries)[today]
		if !tracker.ShouldTrackOnDate(start, habit.Frequency, today) {
			if logged && latest.Completed {
				rest = append(rest, "[x] "+habit.Name)
			} else {
				rest = append(rest, "    "+habit.Name)
			}
			continue
		}

		expected++
		status := "[ ]"
		suffix := ""
		if logged && latest.Completed {
			status = "[x]"
			done++
		} else if logged {
			status = "[-]"
			if latest.Reason != "" {
				suffix = " (" + latest.Reason + ")"
			}
		}
		ctx.Printf("%s %s%s\n", status, habit.Name, suffix)
	}

	if len(rest) > 0 {
		ctx.Println("\nNot scheduled today:")
		for _, line := range rest {
			ctx.Println(line)
		}
	}

	ctx.Printf("\nDone: %d/%d expected\n", done, expected)
	return nil
}

type HabitStreakCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, start, entries, err := loadHabitHistory(ctx, c.Name)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	info := tracker.CalculateStreakInfo(habit.ID, entries, start, habit.Frequency, today)

	ctx.Printf("%s (%s, since %s)\n\n", habit.Name, habit.Frequency, habit.StartDate)
	ctx.Printf("Current streak:  %d\n", info.CurrentStreak)
	ctx.Printf("Longest streak:  %d\n", info.LongestStreak)
	if info.LastCompletionDate != nil {
		ctx.Printf("Last completed:  %s\n", utils.FormatDate(*info.LastCompletionDate))
	} else {
		ctx.Println("Last completed:  never")
	}
	ctx.Printf("Last 7 days:     %d/%d (%d%%)\n", info.CompletedThisWeek, info.ExpectedThisWeek, info.CompletionRate)
	return nil
}

type HabitCalendarCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Month string `help:"Month in YYYY-MM format (default: current month)."`
}

func (c *HabitCalendarCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(c.Name)
	if err != nil {
		return err
	}
	start, err := cli.HabitStart(habit)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	year, month := today.Year(), today.Month()
	if c.Month != "" {
		if year, month, err = utils.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	first := utils.Date(year, month, 1)
	last := utils.Date(year, month, utils.DaysInMonth(year, month))
	entries, err := ctx.Store.GetHabitEntriesForHabit(habit.ID, utils.FormatDate(first), utils.FormatDate(last))
	if err != nil {
		return err
	}

	days := tracker.BuildMonthView(habit.ID, entries, year, month, start, habit.Frequency, today)

	ctx.Printf("%s (%s)\n\n", habit.Name, habit.Frequency)
	ctx.Println(calendar.Render(year, month, days, today))
	ctx.Println()
	ctx.Println(calendar.Legend())

	var reasons []string
	for _, d := range days {
		if d.Status == models.DayStatusMissed && d.Reason != "" {
			reasons = append(reasons, fmt.Sprintf("  %s: %s", utils.FormatDate(d.Date), d.Reason))
		}
	}
	if len(reasons) > 0 {
		ctx.Println("\nReasons:")
		ctx.Println(strings.Join(reasons, "\n"))
	}
	return nil
}

type HabitStatsCmd struct {
	Name string `arg:"" help:"Habit name."`
	From string `help:"First day in YYYY-MM-DD format (default: habit start)."`
	To   string `help:"Last day in YYYY-MM-DD format (default: today)."`
}

func (c *HabitStatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, start, entries, err := loadHabitHistory(ctx, c.Name)
	if err != nil {
		return err
	}

	from := start
	if c.From != "" {
		if from, err = utils.ParseDate(c.From); err != nil {
			return err
		}
	}
	to, err := ctx.Today()
	if err != nil {
		return err
	}
	if c.To != "" {
		if to, err = utils.ParseDate(c.To); err != nil {
			return err
		}
	}
	if from.After(to) {
		return fmt.Errorf("--from (%s) must not be after --to (%s)", utils.FormatDate(from), utils.FormatDate(to))
	}

	stats := tracker.CompletionRateForRange(habit.ID, entries, start, habit.Frequency, from, to)

	ctx.Printf("%s (%s)\n", habit.Name, habit.Frequency)
	ctx.Printf("From %s to %s\n\n", utils.FormatDate(stats.From), utils.FormatDate(stats.To))
	ctx.Printf("Expected days:   %d\n", stats.Expected)
	ctx.Printf("Completed:       %d\n", stats.Completed)
	ctx.Printf("Completion rate: %d%%\n", stats.CompletionRate)
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

const logNameWidth = 20

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = constants.DefaultLogDays
	}

	var selected []models.Habit
	if c.Habit != "" {
		habit, err := ctx.HabitByName(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{habit}
	} else {
		habits, err := ctx.Store.GetAllHabits(false, false)
		if err != nil {
			return err
		}
		selected = habits
	}
	if len(selected) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	from := today.AddDate(0, 0, -(days - 1))

	ctx.Printf("Habit log (last %d days):\n\n", days)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", logNameWidth))
	for i := 0; i < days; i++ {
		header.WriteString(fmt.Sprintf(" %5s", from.AddDate(0, 0, i).Format("01/02")))
	}
	ctx.Println(header.String())
	ctx.Println(strings.Repeat("-", logNameWidth+6*days))

	for _, habit := range selected {
		start, err := cli.HabitStart(habit)
		if err != nil {
			return err
		}
		entries, err := ctx.Store.GetHabitEntriesForHabit(habit.ID, utils.FormatDate(from), utils.FormatDate(today))
		if err != nil {
			return err
		}

		var line strings.Builder
		line.WriteString(padName(habit.Name, logNameWidth))
		for _, d := range tracker.BuildRangeView(habit.ID, entries, start, habit.Frequency, from, today, today) {
			line.WriteString(fmt.Sprintf("   %s  ", calendar.Marker(d)))
		}
		ctx.Println(strings.TrimRight(line.String(), " "))
	}

	ctx.Println()
	ctx.Println("x done  - missed  ! not logged  . expected")
	return nil
}

// padName truncates or pads name to exactly width runes.
func padName(name string, width int) string {
	runes := []rune(name)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-len(runes))
}

// loadHabitHistory fetches a habit by name along with its start date and
// every live entry.
func loadHabitHistory(ctx *cli.Context, name string) (models.Habit, time.Time, []models.HabitEntry, error) {
	habit, err := ctx.HabitByName(name)
	if err != nil {
		return models.Habit{}, time.Time{}, nil, err
	}
	start, err := cli.HabitStart(habit)
	if err != nil {
		return models.Habit{}, time.Time{}, nil, err
	}
	entries, err := ctx.Store.GetAllHabitEntries(habit.ID)
	if err != nil {
		return models.Habit{}, time.Time{}, nil, err
	}
	return habit, start, entries, nil
}
