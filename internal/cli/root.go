package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zerefez/habitcal/internal/logger"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage"
	"github.com/zerefez/habitcal/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Timezone string
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Clock overrides the wall clock, mainly for tests.
	Clock func() time.Time
}

// Today returns the current calendar date in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	if c.Clock != nil {
		return utils.NormalizeDate(c.Clock()), nil
	}
	return utils.TodayInTimezone(c.Timezone)
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// HabitByName looks up an active habit, turning storage.ErrNotFound into a
// message that names the habit.
func (c *Context) HabitByName(name string) (models.Habit, error) {
	habit, err := c.Store.GetHabitByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return habit, err
}

// ResolveDay parses an optional YYYY-MM-DD flag value, defaulting to today.
// Future dates are rejected.
func (c *Context) ResolveDay(value string) (time.Time, error) {
	today, err := c.Today()
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return today, nil
	}
	day, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if day.After(today) {
		return time.Time{}, fmt.Errorf("cannot log %s: date is in the future", value)
	}
	return day, nil
}

// ParseFrequency converts a --frequency flag. Unknown values are accepted as
// daily with a warning.
func (c *Context) ParseFrequency(value string) models.Frequency {
	freq := models.ParseFrequency(value)
	if !models.Frequency(strings.ToLower(strings.TrimSpace(value))).Valid() {
		logger.Warn("Unknown frequency, falling back to daily", "frequency", value)
		c.Printf("Warning: unknown frequency %q, using %s\n", value, freq)
	}
	return freq
}

// HabitStart returns a habit's start date as a normalized date.
func HabitStart(habit models.Habit) (time.Time, error) {
	start, err := utils.ParseDate(habit.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("habit %q has an invalid start date: %w", habit.Name, err)
	}
	return start, nil
}

// FrequencyNames lists the accepted --frequency values for help text.
func FrequencyNames() string {
	names := make([]string, len(models.Frequencies))
	for i, f := range models.Frequencies {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
