package habits

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zerefez/habitcal/internal/cli"
)

// setupHistory creates a daily habit started 2024-03-01 with the last three
// days done and a recorded miss on 2024-03-07. Today is Sunday 2024-03-10.
func setupHistory(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Start: "2024-03-01", Frequency: "daily"})
	mustRun(t, ctx, &HabitMissCmd{Name: "Read", Date: "2024-03-07", Reason: "sick"})
	for _, day := range []string{"2024-03-08", "2024-03-09", "2024-03-10"} {
		mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: day})
	}
	out.Reset()
	return ctx, out
}

func TestHabitStreakCmd(t *testing.T) {
	ctx, out := setupHistory(t)

	mustRun(t, ctx, &HabitStreakCmd{Name: "Read"})
	got := out.String()
	for _, want := range []string{
		"Current streak:  3",
		"Longest streak:  3",
		"Last completed:  2024-03-10",
		"Last 7 days:     3/7 (43%)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("streak output missing %q:\n%s", want, got)
		}
	}
}

func TestHabitStreakCmd_NoEntries(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Start: "2024-03-01", Frequency: "weekly"})
	out.Reset()

	mustRun(t, ctx, &HabitStreakCmd{Name: "Read"})
	if !strings.Contains(out.String(), "Last completed:  never") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestHabitStatsCmd(t *testing.T) {
	tests := []struct {
		name     string
		cmd      HabitStatsCmd
		contains []string
		wantErr  bool
	}{
		{
			name:     "defaults to habit start through today",
			cmd:      HabitStatsCmd{Name: "Read"},
			contains: []string{"From 2024-03-01 to 2024-03-10", "Expected days:   10", "Completed:       3", "Completion rate: 30%"},
		},
		{
			name:     "explicit range",
			cmd:      HabitStatsCmd{Name: "Read", From: "2024-03-08", To: "2024-03-10"},
			contains: []string{"Expected days:   3", "Completion rate: 100%"},
		},
		{
			name:    "inverted range",
			cmd:     HabitStatsCmd{Name: "Read", From: "2024-03-10", To: "2024-03-01"},
			wantErr: true,
		},
		{
			name:    "bad date",
			cmd:     HabitStatsCmd{Name: "Read", From: "yesterday"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupHistory(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestHabitCalendarCmd(t *testing.T) {
	ctx, out := setupHistory(t)

	mustRun(t, ctx, &HabitCalendarCmd{Name: "Read", Month: "2024-03"})
	got := out.String()
	for _, want := range []string{"March 2024", " 1!", " 7-", " 8x", "10x", "11.", "Reasons:", "2024-03-07: sick"} {
		if !strings.Contains(got, want) {
			t.Errorf("calendar output missing %q:\n%s", want, got)
		}
	}

	if err := (&HabitCalendarCmd{Name: "Read", Month: "2024-13"}).Run(ctx); err == nil {
		t.Error("invalid month should fail")
	}
}

func TestHabitCalendarCmd_DefaultsToCurrentMonth(t *testing.T) {
	ctx, out := setupHistory(t)

	mustRun(t, ctx, &HabitCalendarCmd{Name: "Read"})
	if !strings.Contains(out.String(), "March 2024") {
		t.Errorf("calendar did not default to the current month:\n%s", out.String())
	}
}

func TestHabitTodayCmd(t *testing.T) {
	ctx, out := setupHistory(t)
	// Fridays only; today is a Sunday
	mustRun(t, ctx, &HabitAddCmd{Name: "Review week", Start: "2024-03-01", Frequency: "weekly"})
	out.Reset()

	mustRun(t, ctx, &HabitTodayCmd{})
	got := out.String()
	for _, want := range []string{"Habits for 2024-03-10", "[x] Read", "Not scheduled today:", "Review week", "Done: 1/1 expected"} {
		if !strings.Contains(got, want) {
			t.Errorf("today output missing %q:\n%s", want, got)
		}
	}
}

func TestHabitTodayCmd_MissedWithReason(t *testing.T) {
	ctx, out := setupTestContext(t, "2024-03-10")
	mustRun(t, ctx, &HabitAddCmd{Name: "Run", Start: "2024-03-01", Frequency: "daily"})
	mustRun(t, ctx, &HabitMissCmd{Name: "Run", Reason: "rain"})
	out.Reset()

	mustRun(t, ctx, &HabitTodayCmd{})
	if !strings.Contains(out.String(), "[-] Run (rain)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Done: 0/1 expected") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestHabitLogCmd(t *testing.T) {
	ctx, out := setupHistory(t)

	mustRun(t, ctx, &HabitLogCmd{Days: 4, Habit: "Read"})
	got := out.String()
	if !strings.Contains(got, "03/07 03/08 03/09 03/10") {
		t.Errorf("log header missing dates:\n%s", got)
	}
	if !strings.Contains(got, "Read"+strings.Repeat(" ", 16)+"   -     x     x     x") {
		t.Errorf("log row incorrect:\n%s", got)
	}

	if err := (&HabitLogCmd{Days: 4, Habit: "Nope"}).Run(ctx); err == nil {
		t.Error("log for an unknown habit should fail")
	}
}

func TestPadName(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"Read", 6, "Read  "},
		{"Meditation", 8, "Medit..."},
		{"Exact", 5, "Exact"},
	}
	for _, tt := range tests {
		if got := padName(tt.name, tt.width); got != tt.want {
			t.Errorf("padName(%q, %d) = %q, want %q", tt.name, tt.width, got, tt.want)
		}
	}
}
