package create_booking

import (
	"time"

	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя-владельца
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала ("10:00")
	EndTime   types.TimeString // Время окончания ("11:00")
}

// Response модель ответа с созданным бронированием
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
