package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/utils"
)

type HabitFormModel struct {
	Name      string
	StartDate string
	Frequency models.Frequency
}

type MissFormModel struct {
	HabitID string
	Reason  string
}

// NewHabitForm creates a form for adding a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := make([]huh.Option[models.Frequency], len(models.Frequencies))
	for i, f := range models.Frequencies {
		options[i] = huh.NewOption(f.String(), f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Value(&fm.StartDate).
				Validate(func(s string) error {
					_, err := utils.ParseDate(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(options...).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewMissForm asks why a habit was skipped. The reason is optional.
func NewMissForm(fm *MissFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reason (optional)").
				Value(&fm.Reason),
		),
	).WithTheme(huh.ThemeDracula())
}
