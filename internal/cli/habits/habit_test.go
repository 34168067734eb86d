package habits

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage/memory"
)

// setupTestContext returns a context over an in-memory store whose clock is
// fixed at noon on today.
func setupTestContext(t *testing.T, today string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	now, err := time.Parse("2006-01-02", today)
	if err != nil {
		t.Fatalf("bad test date %q: %v", today, err)
	}
	now = now.Add(12 * time.Hour)

	out := &bytes.Buffer{}
	return &cli.Context{
		Store: memory.NewStore(),
		Out:   out,
		Clock: func() time.Time { return now },
	}, out
}

func mustRun(t *testing.T, ctx *cli.Context, cmd interface{ Run(*cli.Context) error }) {
	t.Helper()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("%T.Run() failed: %v", cmd, err)
	}
}

func TestHabitAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")

	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Frequency: "weekly"})
	habit, err := ctx.Store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("habit not stored: %v", err)
	}
	if habit.StartDate != "2024-03-10" {
		t.Errorf("StartDate = %s, want today", habit.StartDate)
	}
	if habit.Frequency != models.FrequencyWeekly {
		t.Errorf("Frequency = %s, want weekly", habit.Frequency)
	}
	if !strings.Contains(out.String(), "Added habit: Read") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&HabitAddCmd{Name: "Read", Frequency: "daily"}).Run(ctx); err == nil {
		t.Error("adding a duplicate name should fail")
	}
	if err := (&HabitAddCmd{Name: "  ", Frequency: "daily"}).Run(ctx); err == nil {
		t.Error("adding an empty name should fail")
	}
	if err := (&HabitAddCmd{Name: "Bad", Start: "03/10/2024", Frequency: "daily"}).Run(ctx); err == nil {
		t.Error("adding with a malformed start date should fail")
	}
}

func TestHabitAddCmd_UnknownFrequencyWarns(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")

	mustRun(t, ctx, &HabitAddCmd{Name: "Yoga", Start: "2024-03-01", Frequency: "fortnightly"})

	habit, _ := ctx.Store.GetHabitByName("Yoga")
	if habit.Frequency != models.FrequencyDaily {
		t.Errorf("Frequency = %s, want daily fallback", habit.Frequency)
	}
	if !strings.Contains(out.String(), `unknown frequency "fortnightly"`) {
		t.Errorf("missing warning in output: %q", out.String())
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx, _ := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Start: "2024-03-01", Frequency: "daily"})
	mustRun(t, ctx, &HabitAddCmd{Name: "Run", Start: "2024-03-01", Frequency: "daily"})

	if err := (&HabitEditCmd{Name: "Read"}).Run(ctx); err == nil {
		t.Error("edit without changes should fail")
	}
	if err := (&HabitEditCmd{Name: "Read", Rename: "Run"}).Run(ctx); err == nil {
		t.Error("renaming onto an existing habit should fail")
	}

	mustRun(t, ctx, &HabitEditCmd{Name: "Read", Rename: "Read books", Start: "2024-03-04", Frequency: "weekdays"})
	habit, err := ctx.Store.GetHabitByName("Read books")
	if err != nil {
		t.Fatalf("renamed habit not found: %v", err)
	}
	if habit.StartDate != "2024-03-04" || habit.Frequency != models.FrequencyWeekdays {
		t.Errorf("edit not applied: %+v", habit)
	}
}

func TestHabitArchiveDeleteRestoreCmds(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Frequency: "daily"})

	mustRun(t, ctx, &HabitArchiveCmd{Name: "Read"})
	out.Reset()
	mustRun(t, ctx, &HabitListCmd{})
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("archived habit listed: %q", out.String())
	}
	out.Reset()
	mustRun(t, ctx, &HabitListCmd{Archived: true})
	if !strings.Contains(out.String(), "[ARCHIVED]") {
		t.Errorf("archived habit missing from --archived list: %q", out.String())
	}
	mustRun(t, ctx, &HabitArchiveCmd{Name: "Read", Unarchive: true})

	mustRun(t, ctx, &HabitDeleteCmd{Name: "Read"})
	if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err == nil {
		t.Error("deleting a deleted habit should fail")
	}
	out.Reset()
	mustRun(t, ctx, &HabitListCmd{Deleted: true})
	if !strings.Contains(out.String(), "[DELETED]") {
		t.Errorf("deleted habit missing from --deleted list: %q", out.String())
	}

	mustRun(t, ctx, &HabitRestoreCmd{Name: "Read"})
	if _, err := ctx.Store.GetHabitByName("Read"); err != nil {
		t.Errorf("restored habit not found: %v", err)
	}
	if err := (&HabitRestoreCmd{Name: "Read"}).Run(ctx); err == nil {
		t.Error("restoring an active habit should fail")
	}
}

func TestHabitMarkMissUnmark(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Start: "2024-03-01", Frequency: "daily"})
	habit, _ := ctx.Store.GetHabitByName("Read")

	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Note: "chapter 3"})
	mustRun(t, ctx, &HabitMissCmd{Name: "Read", Date: "2024-03-09", Reason: "travel"})
	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2024-03-09"})

	entries, _ := ctx.Store.GetAllHabitEntries(habit.ID)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (entries are append-only)", len(entries))
	}

	if err := (&HabitMarkCmd{Name: "Read", Date: "2024-03-11"}).Run(ctx); err == nil {
		t.Error("marking a future date should fail")
	}
	if err := (&HabitMarkCmd{Name: "Nope"}).Run(ctx); err == nil || !strings.Contains(err.Error(), `"Nope" not found`) {
		t.Errorf("marking an unknown habit error = %v", err)
	}

	out.Reset()
	mustRun(t, ctx, &HabitUnmarkCmd{Name: "Read", Date: "2024-03-09"})
	if !strings.Contains(out.String(), "Unmarked") {
		t.Errorf("unexpected output: %q", out.String())
	}
	entries, _ = ctx.Store.GetAllHabitEntries(habit.ID)
	if len(entries) != 1 || entries[0].Day != "2024-03-10" {
		t.Errorf("entries after unmark = %+v", entries)
	}

	out.Reset()
	mustRun(t, ctx, &HabitUnmarkCmd{Name: "Read", Date: "2024-03-08"})
	if !strings.Contains(out.String(), "No entries") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitMarkCmd_NotExpectedDay(t *testing.T) {
	// 2024-03-09 is a Saturday
	ctx, out := setupTestContext(t, "2024-03-09")
	mustRun(t, ctx, &HabitAddCmd{Name: "Work out", Start: "2024-03-04", Frequency: "weekdays"})

	out.Reset()
	mustRun(t, ctx, &HabitMarkCmd{Name: "Work out"})
	if !strings.Contains(out.String(), "not an expected day") {
		t.Errorf("missing notice for non-expected day: %q", out.String())
	}
}
