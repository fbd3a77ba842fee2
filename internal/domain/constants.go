package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Retention defaults
const (
	// DefaultBookingRetentionDays бронирования старше этого срока удаляются фоновой задачей
	DefaultBookingRetentionDays = 30
)

// Statistics periods
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
	PeriodYearly = "yearly"

	// StatisticsIntervals количество интервалов в отчете статистики
	StatisticsIntervals = 7

	// RecentSignupsLimit количество последних регистраций в отчете статистики
	RecentSignupsLimit = 5
)
