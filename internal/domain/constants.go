package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	DefaultEarliestMinute    = 5*60 + 30 // 05:30
	DefaultLatestMinute      = 18 * 60   // 18:00
	DefaultReminderLeadHours = 24
)

// Business validation constants
const (
	MinutesInDay       = 24 * 60
	MinDurationMinutes = 5
	MaxDurationMinutes = MinutesInDay
)
