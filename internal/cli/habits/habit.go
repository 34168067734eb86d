package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit a habit."`
	Mark     HabitMarkCmd     `cmd:"" help:"Record a habit as done for a day."`
	Miss     HabitMissCmd     `cmd:"" help:"Record a habit as not done for a day."`
	Unmark   HabitUnmarkCmd   `cmd:"" help:"Remove the entries recorded for a day."`
	Today    HabitTodayCmd    `cmd:"" help:"Show today's habit status."`
	Streak   HabitStreakCmd   `cmd:"" help:"Show streaks and weekly completion for a habit."`
	Calendar HabitCalendarCmd `cmd:"" help:"Show a month calendar for a habit."`
	Stats    HabitStatsCmd    `cmd:"" help:"Show completion over a date range."`
	Log      HabitLogCmd      `cmd:"" help:"Show habit log (ASCII history)."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Archive a habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit (soft delete)."`
	Restore  HabitRestoreCmd  `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Start     string `help:"Start date in YYYY-MM-DD format (default: today)."`
	Frequency string `short:"f" help:"${frequency_help}" default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	start, err := ctx.Today()
	if err != nil {
		return err
	}
	if c.Start != "" {
		if start, err = utils.ParseDate(c.Start); err != nil {
			return err
		}
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: utils.FormatDate(start),
		Frequency: ctx.ParseFrequency(c.Frequency),
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s, from %s)\n", habit.Name, habit.Frequency, habit.StartDate)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		ctx.Printf("%-24s %-20s since %s%s\n", habit.Name, habit.Frequency, habit.StartDate, status)
	}
	return nil
}

type HabitEditCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Rename    string `help:"New habit name."`
	Start     string `help:"New start date in YYYY-MM-DD format."`
	Frequency string `short:"f" help:"${frequency_help}"`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(c.Name)
	if err != nil {
		return err
	}

	if c.Rename == "" && c.Start == "" && c.Frequency == "" {
		return fmt.Errorf("nothing to change: pass --rename, --start or --frequency")
	}

	if c.Rename != "" {
		name := strings.TrimSpace(c.Rename)
		if name == "" {
			return fmt.Errorf("habit name cannot be empty")
		}
		if other, err := ctx.Store.GetHabitByName(name); err == nil && other.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", name)
		}
		habit.Name = name
	}
	if c.Start != "" {
		start, err := utils.ParseDate(c.Start)
		if err != nil {
			return err
		}
		habit.StartDate = utils.FormatDate(start)
	}
	if c.Frequency != "" {
		habit.Frequency = ctx.ParseFrequency(c.Frequency)
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s, from %s)\n", habit.Name, habit.Frequency, habit.StartDate)
	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(c.Name)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		ctx.Printf("Unarchived habit: %s\n", habit.Name)
		return nil
	}

	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.HabitByName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	ctx.Printf("Deleted habit: %s\n", habit.Name)
	ctx.Printf("Restore it with: habitcal habit restore %q\n", habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	// Most recently deleted wins when the name was reused
	var target *models.Habit
	for i := range habits {
		h := &habits[i]
		if h.Name != c.Name || h.DeletedAt == nil {
			continue
		}
		if target == nil || h.DeletedAt.After(*target.DeletedAt) {
			target = h
		}
	}
	if target == nil {
		return fmt.Errorf("no deleted habit named %q", c.Name)
	}

	if err := ctx.Store.RestoreHabit(target.ID); err != nil {
		return fmt.Errorf("failed to restore habit %q: %w", c.Name, err)
	}
	ctx.Printf("Restored habit: %s\n", target.Name)
	return nil
}
