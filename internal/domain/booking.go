package domain

import (
	"time"

	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// Booking represents a user's time-ranged reservation.
// UserName is denormalized from the users table by the repository
// so that report generation does not need a separate lookup.
type Booking struct {
	ID        int64
	UserID    int64
	UserName  string
	Date      time.Time // calendar date, time-of-day part is zero
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameDate returns true if both bookings fall on the same calendar date.
func (b *Booking) SameDate(other *Booking) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	UserID    *int64     // nil = all users
	Date      *time.Time // nil = all dates
	StartDate *time.Time // период: начало (опционально)
	EndDate   *time.Time // период: конец (опционально)
}
