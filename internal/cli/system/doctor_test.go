package system

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage/memory"
)

func setupDoctorContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    memory.NewStore(),
		Timezone: "UTC",
		Out:      out,
		Clock:    func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
	return ctx, out
}

func addDoctorHabit(t *testing.T, ctx *cli.Context, id, name string, freq models.Frequency) {
	t.Helper()
	habit := models.Habit{ID: id, Name: name, StartDate: "2024-03-01", Frequency: freq, CreatedAt: time.Now()}
	if err := ctx.Store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
}

func addDoctorEntry(t *testing.T, ctx *cli.Context, habitID, day string) {
	t.Helper()
	now := time.Now()
	entry := models.HabitEntry{ID: habitID + day, HabitID: habitID, Day: day, Completed: true, CreatedAt: now, UpdatedAt: now}
	if _, err := ctx.Store.AddHabitEntry(entry); err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := setupDoctorContext(t)
	addDoctorHabit(t, ctx, "h1", "Read", models.FrequencyDaily)
	addDoctorEntry(t, ctx, "h1", "2024-03-02")
	addDoctorEntry(t, ctx, "h1", "2024-03-02")

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}

	for _, want := range []string{
		"✓ Database reachable: OK",
		"✓ Habit integrity: OK",
		"✓ Habit entries: OK",
		"1 day(s) have superseded entries",
		"✓ Clock/timezone: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_Problems(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, ctx *cli.Context)
		wantErr bool
		want    string
	}{
		{
			name: "unknown frequency warns",
			setup: func(t *testing.T, ctx *cli.Context) {
				addDoctorHabit(t, ctx, "h1", "Read", models.Frequency("fortnightly"))
			},
			want: "⚠ Habit integrity: WARNING",
		},
		{
			name: "invalid start date fails",
			setup: func(t *testing.T, ctx *cli.Context) {
				habit := models.Habit{ID: "h1", Name: "Read", StartDate: "03/01/2024", Frequency: models.FrequencyDaily}
				if err := ctx.Store.AddHabit(habit); err != nil {
					t.Fatalf("failed to add habit: %v", err)
				}
			},
			wantErr: true,
			want:    "❌ Habit integrity: FAIL",
		},
		{
			name: "invalid entry day fails",
			setup: func(t *testing.T, ctx *cli.Context) {
				addDoctorHabit(t, ctx, "h1", "Read", models.FrequencyDaily)
				addDoctorEntry(t, ctx, "h1", "2024-13-45")
			},
			wantErr: true,
			want:    "❌ Habit entries: FAIL",
		},
		{
			name: "missing timestamps fail",
			setup: func(t *testing.T, ctx *cli.Context) {
				addDoctorHabit(t, ctx, "h1", "Read", models.FrequencyDaily)
				entry := models.HabitEntry{ID: "e1", HabitID: "h1", Day: "2024-03-02", Completed: true}
				if _, err := ctx.Store.AddHabitEntry(entry); err != nil {
					t.Fatalf("failed to add entry: %v", err)
				}
			},
			wantErr: true,
			want:    "missing timestamps",
		},
		{
			name: "invalid timezone fails",
			setup: func(t *testing.T, ctx *cli.Context) {
				ctx.Timezone = "Mars/Olympus_Mons"
			},
			wantErr: true,
			want:    "❌ Clock/timezone: FAIL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupDoctorContext(t)
			tt.setup(t, ctx)

			err := (&DoctorCmd{}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("doctor error = %v, wantErr %v\n%s", err, tt.wantErr, out.String())
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestDoctorCmd_UnreachableSkipsChecks(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Timezone = "UTC"

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on an uninitialized database")
	}
	for _, want := range []string{
		"❌ Database reachable: FAIL",
		"⊘ Habit integrity: SKIPPED",
		"⊘ Habit entries: SKIPPED",
		"Diagnostics completed with errors.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_SQLiteSchema(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Timezone = "UTC"

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ Schema version: OK\n   version 1") {
		t.Errorf("output missing schema version:\n%s", out.String())
	}
}
