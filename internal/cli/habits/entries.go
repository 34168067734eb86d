package habits

import (
	"time"

	"github.com/google/uuid"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/tracker"
	"github.com/zerefez/habitcal/internal/utils"
)

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note string `help:"Optional note for this entry." default:""`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	return recordEntry(ctx, c.Name, c.Date, true, "", c.Note)
}

type HabitMissCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Reason string `help:"Why the habit was skipped." default:""`
	Note   string `help:"Optional note for this entry." default:""`
}

func (c *HabitMissCmd) Run(ctx *cli.Context) error {
	return recordEntry(ctx, c.Name, c.Date, false, c.Reason, c.Note)
}

// recordEntry appends a new entry. Earlier entries for the same day are kept;
// the newest one decides the day's status.
func recordEntry(ctx *cli.Context, name, date string, completed bool, reason, note string) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(name)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(date)
	if err != nil {
		return err
	}
	start, err := cli.HabitStart(habit)
	if err != nil {
		return err
	}

	now := time.Now()
	entry, err := ctx.Store.AddHabitEntry(models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       utils.FormatDate(day),
		Completed: completed,
		Reason:    reason,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	if completed {
		ctx.Printf("Marked habit %q done for %s\n", habit.Name, entry.Day)
	} else {
		ctx.Printf("Marked habit %q missed for %s\n", habit.Name, entry.Day)
	}
	if !tracker.ShouldTrackOnDate(start, habit.Frequency, day) {
		ctx.Printf("Note: %s is not an expected day for this %s habit; it does not count towards streaks.\n", entry.Day, habit.Frequency)
	}
	return nil
}

type HabitUnmarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitUnmarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	dayStr := utils.FormatDate(day)
	n, err := ctx.Store.DeleteHabitEntriesForDay(habit.ID, dayStr)
	if err != nil {
		return err
	}
	if n == 0 {
		ctx.Printf("No entries for habit %q on %s\n", habit.Name, dayStr)
		return nil
	}
	ctx.Printf("Unmarked habit %q for %s\n", habit.Name, dayStr)
	return nil
}
