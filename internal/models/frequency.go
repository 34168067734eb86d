package models

import "strings"

// Frequency is the schedule pattern that decides which days a habit is expected.
type Frequency string

const (
	FrequencyDaily            Frequency = "daily"
	FrequencyEveryOtherDay    Frequency = "every-other-day"
	FrequencyWeekdays         Frequency = "weekdays"
	FrequencyWeekends         Frequency = "weekends"
	FrequencyWeekly           Frequency = "weekly"
	FrequencyTwiceWeekly      Frequency = "twice-weekly"
	FrequencyThreeTimesWeekly Frequency = "three-times-weekly"
	FrequencyMonthly          Frequency = "monthly"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyEveryOtherDay,
	FrequencyWeekdays,
	FrequencyWeekends,
	FrequencyWeekly,
	FrequencyTwiceWeekly,
	FrequencyThreeTimesWeekly,
	FrequencyMonthly,
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFrequency converts a user or storage value into a Frequency.
// Unrecognized values fall back to FrequencyDaily.
func ParseFrequency(s string) Frequency {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f.Valid() {
		return f
	}
	return FrequencyDaily
}

func (f Frequency) String() string {
	return string(f)
}
