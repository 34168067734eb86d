package constants

const (
	AppName            = "habitcal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitcal/habitcal.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for calendar month selection (YYYY-MM)
	MonthFormat = "2006-01"

	// DefaultTimezone uses the system local timezone
	DefaultTimezone = "Local"

	// Environment variables
	EnvDBConnection = "HABITCAL_DB_CONNECTION"
	EnvTimezone     = "HABITCAL_TIMEZONE"

	// AnchorLookbackDays bounds the backward search for the most recent
	// expected day when today is not completed. Large enough to bridge the
	// longest monthly gap (e.g. Jan 31 -> Mar 31).
	AnchorLookbackDays = 62

	// WeekWindowDays is the trailing window used for weekly statistics.
	WeekWindowDays = 7

	// DefaultLogDays is the number of days shown by `habit log`.
	DefaultLogDays = 14
)
