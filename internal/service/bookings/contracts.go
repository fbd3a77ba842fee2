package bookings

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

// UserProvider интерфейс доступа к пользователям (проверка флага админа)
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ConflictReporter интерфейс генератора отчета о конфликтах
type ConflictReporter interface {
	GenerateConflictReport(ctx context.Context) (*domain.ConflictReport, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
