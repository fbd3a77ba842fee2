package statistics

import (
	"context"
	"time"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

// BookingCounter интерфейс подсчета бронирований по периоду создания
type BookingCounter interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// UserProvider интерфейс доступа к данным пользователей для статистики
type UserProvider interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
