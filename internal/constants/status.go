package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateHabits SessionState = iota
	StateAddHabit
	StateMissReason
)
