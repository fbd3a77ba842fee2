package create_booking

import (
	"context"
	"time"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// UserProvider интерфейс доступа к пользователям
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// OverlapValidator интерфейс проверки пересечений бронирований
type OverlapValidator interface {
	ValidateNoOverlap(ctx context.Context, userID int64, date time.Time,
		startTime types.TimeString, endTime types.TimeString, excludeBookingID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
