package update_booking

import (
	"time"

	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// Request модель запроса на обновление бронирования.
// Поля даты и времени опциональны - не переданные значения
// сохраняют текущее состояние бронирования.
type Request struct {
	BookingID   int64
	RequesterID int64 // кто выполняет запрос (владелец или админ)

	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID        int64
	UserID    int64
	UserName  string
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}
