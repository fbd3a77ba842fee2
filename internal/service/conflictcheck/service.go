package conflictcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// Service сервис проверки пересечений бронирований.
// Не хранит состояния между вызовами - каждый вызов работает
// на свежем срезе данных из репозитория.
type Service struct {
	bookingProvider BookingProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса проверки пересечений
func NewService(bookingProvider BookingProvider, logger Logger) *Service {
	return &Service{
		bookingProvider: bookingProvider,
		logger:          logger,
	}
}

// ValidateNoOverlap проверяет, что диапазон [startTime, endTime) на дату date
// не пересекается с другими бронированиями пользователя userID.
//
// excludeBookingID исключает из проверки редактируемое бронирование,
// чтобы оно не конфликтовало со своим же прежним состоянием (nil при создании).
//
// Пересечение полуинтервальное: касание границ (end == start) не считается
// конфликтом. Проверяются только бронирования того же пользователя -
// межпользовательские пересечения не блокируют запись, они попадают
// только в отчет GenerateConflictReport.
func (s *Service) ValidateNoOverlap(
	ctx context.Context,
	userID int64,
	date time.Time,
	startTime types.TimeString,
	endTime types.TimeString,
	excludeBookingID *int64,
) error {
	candidateStart, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid candidate start time: %v", ErrInternal, err)
	}
	candidateEnd, err := endTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid candidate end time: %v", ErrInternal, err)
	}

	bookings, err := s.bookingProvider.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ValidateNoOverlap: failed to fetch bookings for user=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to fetch bookings: %v", ErrInternal, err)
	}

	for _, existing := range bookings {
		if excludeBookingID != nil && existing.ID == *excludeBookingID {
			continue
		}
		if !isSameDate(existing.Date, date) {
			continue
		}

		existingStart, err := existing.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: booking id=%d has invalid start time: %v", ErrInternal, existing.ID, err)
		}
		existingEnd, err := existing.EndTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: booking id=%d has invalid end time: %v", ErrInternal, existing.ID, err)
		}

		// Полуинтервальная проверка: строгие неравенства,
		// касание границ конфликтом не считается
		if candidateStart < existingEnd && candidateEnd > existingStart {
			s.logger.Warn("ValidateNoOverlap: user=%d booking on %s %s-%s overlaps with booking id=%d",
				userID, date.Format(domain.DateFormat), startTime, endTime, existing.ID)
			return ErrOverlapConflict
		}
	}

	return nil
}

// isSameDate сравнивает только календарные даты, время суток игнорируется
func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
