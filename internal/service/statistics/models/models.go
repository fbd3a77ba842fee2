package models

// IntervalStats количество бронирований и регистраций за один интервал
type IntervalStats struct {
	Date     string `json:"date"` // метка интервала: дата, неделя или месяц
	Bookings int    `json:"bookings"`
	Signups  int    `json:"signups"`
}

// RecentSignup недавно зарегистрированный пользователь
type RecentSignup struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Summary суммарные показатели за все интервалы
type Summary struct {
	TotalBookings int `json:"total_bookings"`
	TotalSignups  int `json:"total_signups"`
}

// StatisticsResponse отчет статистики за период
type StatisticsResponse struct {
	Period        string          `json:"period"`
	Intervals     []IntervalStats `json:"intervals"`
	RecentSignups []RecentSignup  `json:"recent_signups"`
	Summary       Summary         `json:"summary"`
}
