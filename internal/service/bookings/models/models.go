package models

import (
	"time"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

// BookingResponse представление бронирования для API
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// ValidationResponse результат проверки конкретного бронирования на конфликты.
// Содержит только пары, в которых участвует проверяемое бронирование.
type ValidationResponse struct {
	Booking      *BookingResponse      `json:"booking"`
	HasConflicts bool                  `json:"has_conflicts"`
	Overlapping  []domain.OverlapPair  `json:"overlapping"`
	Conflicts    []domain.ConflictPair `json:"conflicts"`
}

// FromDomainBooking конвертирует domain.Booking в API представление
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
