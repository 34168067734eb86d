package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage"
	"github.com/zerefez/habitcal/internal/utils"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkipped
)

type check struct {
	name string
	run  func(ctx *cli.Context) (checkResult, string)
}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false

	report := func(name string, result checkResult, detail string) {
		switch result {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			hasError = true
		case checkSkipped:
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", name)
		}
		if detail != "" {
			ctx.Printf("   %s\n", detail)
		}
	}

	if err := ctx.Store.Load(); err != nil {
		report("Database reachable", checkFail, fmt.Sprintf("Error: %v", err))
	} else {
		report("Database reachable", checkOK, "")
		reachable = true
	}

	checks := []check{
		{"Schema version", checkSchema},
		{"Habit integrity", checkHabits},
		{"Habit entries", checkEntries},
	}
	for _, chk := range checks {
		if !reachable {
			report(chk.name, checkSkipped, "")
			continue
		}
		result, detail := chk.run(ctx)
		report(chk.name, result, detail)
	}

	result, detail := checkClockTimezone(ctx)
	report("Clock/timezone", result, detail)

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchema(ctx *cli.Context) (checkResult, string) {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return checkOK, "backend has no versioned schema"
	}
	st, err := migrator.SchemaStatus()
	if err != nil {
		return checkFail, fmt.Sprintf("Error: %v", err)
	}
	if err := st.Check(); err != nil {
		return checkFail, fmt.Sprintf("Error: %v", err)
	}
	return checkOK, fmt.Sprintf("version %d", st.Current)
}

// checkHabits fails on unparseable start dates or duplicate active names and
// warns about frequencies that will be read as daily.
func checkHabits(ctx *cli.Context) (checkResult, string) {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return checkFail, fmt.Sprintf("Error: failed to list habits: %v", err)
	}

	var problems, warnings []string
	active := make(map[string]bool)
	for _, h := range habits {
		if _, err := utils.ParseDate(h.StartDate); err != nil {
			problems = append(problems, fmt.Sprintf("habit %q has invalid start date %q", h.Name, h.StartDate))
		}
		if h.DeletedAt == nil {
			if active[h.Name] {
				problems = append(problems, fmt.Sprintf("duplicate active habit name %q", h.Name))
			}
			active[h.Name] = true
		}
		if !h.Frequency.Valid() {
			warnings = append(warnings, fmt.Sprintf("habit %q has unknown frequency %q (treated as %s)", h.Name, h.Frequency, models.FrequencyDaily))
		}
	}

	if len(problems) > 0 {
		return checkFail, "Error: " + strings.Join(problems, "; ")
	}
	if len(warnings) > 0 {
		return checkWarn, strings.Join(warnings, "; ")
	}
	return checkOK, ""
}

// checkEntries fails on malformed days or timestamps. Days with superseded
// entries are reported for information only.
func checkEntries(ctx *cli.Context) (checkResult, string) {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return checkFail, fmt.Sprintf("Error: failed to list habits: %v", err)
	}

	var problems []string
	superseded := 0
	for _, h := range habits {
		entries, err := ctx.Store.GetAllHabitEntries(h.ID)
		if err != nil {
			return checkFail, fmt.Sprintf("Error: failed to list entries for %q: %v", h.Name, err)
		}
		perDay := make(map[string]int)
		for _, e := range entries {
			if _, err := utils.ParseDate(e.Day); err != nil {
				problems = append(problems, fmt.Sprintf("entry %s of %q has invalid day %q", e.ID, h.Name, e.Day))
				continue
			}
			if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
				problems = append(problems, fmt.Sprintf("entry %s of %q has missing timestamps", e.ID, h.Name))
			}
			perDay[e.Day]++
		}
		for _, n := range perDay {
			if n > 1 {
				superseded++
			}
		}
	}

	if len(problems) > 0 {
		return checkFail, "Error: " + strings.Join(problems, "; ")
	}
	if superseded > 0 {
		return checkOK, fmt.Sprintf("%d day(s) have superseded entries; the latest entry wins", superseded)
	}
	return checkOK, ""
}

func checkClockTimezone(ctx *cli.Context) (checkResult, string) {
	if !utils.ValidateTimezone(ctx.Timezone) {
		return checkFail, fmt.Sprintf("Error: invalid timezone %q", ctx.Timezone)
	}
	now := time.Now()
	if ctx.Clock != nil {
		now = ctx.Clock()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return checkFail, fmt.Sprintf("Error: system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return checkOK, ""
}
