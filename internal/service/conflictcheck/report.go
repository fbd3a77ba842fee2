package conflictcheck

import (
	"context"
	"fmt"
	"sort"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

// timedBooking бронирование с предвычисленными минутами от начала суток.
// Минуты считаются один раз на срез, а не в каждом попарном сравнении.
type timedBooking struct {
	booking *domain.Booking
	start   int
	end     int
}

// GenerateConflictReport строит полный отчет о конфликтах по всем
// бронированиям системы: частичные пересечения, точные дубликаты
// и простои между соседними бронированиями.
//
// Три прохода независимы. Пары сравниваются один раз (i < j в порядке
// выборки); сравнение симметрично, поэтому порядок обхода влияет только
// на порядок записей, не на их состав. Точные дубликаты исключены из
// списка пересечений - категории взаимоисключающие.
func (s *Service) GenerateConflictReport(ctx context.Context) (*domain.ConflictReport, error) {
	bookings, err := s.bookingProvider.GetAllForConflictCheck(ctx)
	if err != nil {
		s.logger.Error("GenerateConflictReport: failed to fetch bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch bookings: %v", ErrInternal, err)
	}

	timed, err := precomputeMinutes(bookings)
	if err != nil {
		// Некорректное время в хранимых данных - нарушение контракта
		// вышестоящей валидации, молча пропускать запись нельзя
		s.logger.Error("GenerateConflictReport: %v", err)
		return nil, err
	}

	overlapping := findOverlappingBookings(timed)
	conflicts := findConflictingBookings(timed)
	gaps := findGapsBetweenBookings(timed)

	report := &domain.ConflictReport{
		Overlapping: overlapping,
		Conflicts:   conflicts,
		Gaps:        gaps,
		Summary: domain.ConflictSummary{
			TotalBookings:    len(bookings),
			OverlappingCount: len(overlapping),
			ConflictCount:    len(conflicts),
			GapCount:         len(gaps),
		},
	}

	s.logger.Info("GenerateConflictReport: total=%d overlapping=%d conflicts=%d gaps=%d",
		report.Summary.TotalBookings, report.Summary.OverlappingCount,
		report.Summary.ConflictCount, report.Summary.GapCount)

	return report, nil
}

// precomputeMinutes конвертирует время начала/окончания в минуты от начала суток
func precomputeMinutes(bookings []*domain.Booking) ([]timedBooking, error) {
	timed := make([]timedBooking, 0, len(bookings))

	for _, b := range bookings {
		start, err := b.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d has invalid start time: %v", ErrInternal, b.ID, err)
		}
		end, err := b.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d has invalid end time: %v", ErrInternal, b.ID, err)
		}
		timed = append(timed, timedBooking{booking: b, start: start, end: end})
	}

	return timed, nil
}

// findOverlappingBookings находит пары с частичным пересечением по времени
// на одной дате. Точные дубликаты не включаются - они относятся к
// findConflictingBookings. Владелец не учитывается: отчет показывает
// пересечения по всей системе.
func findOverlappingBookings(timed []timedBooking) []domain.OverlapPair {
	overlapping := make([]domain.OverlapPair, 0)

	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			b1, b2 := timed[i], timed[j]

			if !b1.booking.SameDate(b2.booking) {
				continue
			}

			hasOverlap := b1.start < b2.end && b1.end > b2.start
			isExact := b1.start == b2.start && b1.end == b2.end

			if hasOverlap && !isExact {
				overlapping = append(overlapping, domain.OverlapPair{
					Booking1:    toBookingRef(b1.booking),
					Booking2:    toBookingRef(b2.booking),
					OverlapType: domain.OverlapTypePartial,
				})
			}
		}
	}

	return overlapping
}

// findConflictingBookings находит пары с полностью совпадающими датой и временем
func findConflictingBookings(timed []timedBooking) []domain.ConflictPair {
	conflicts := make([]domain.ConflictPair, 0)

	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			b1, b2 := timed[i], timed[j]

			if !b1.booking.SameDate(b2.booking) {
				continue
			}

			if b1.start == b2.start && b1.end == b2.end {
				conflicts = append(conflicts, domain.ConflictPair{
					Booking1:     toBookingRef(b1.booking),
					Booking2:     toBookingRef(b2.booking),
					ConflictType: domain.ConflictTypeExactMatch,
				})
			}
		}
	}

	return conflicts
}

// findGapsBetweenBookings находит простои между хронологически соседними
// бронированиями на одной дате. Соседство определяется после сортировки
// по времени начала; владельцы соседних бронирований могут различаться.
// Записывается только строго положительный простой - примыкание и
// пересечение простоем не являются.
func findGapsBetweenBookings(timed []timedBooking) []domain.Gap {
	gaps := make([]domain.Gap, 0)

	byDate := make(map[string][]timedBooking)
	dates := make([]string, 0)
	for _, tb := range timed {
		key := tb.booking.Date.Format(domain.DateFormat)
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], tb)
	}

	// Даты обходим в отсортированном порядке, чтобы отчет был детерминированным
	sort.Strings(dates)

	for _, date := range dates {
		dateBookings := byDate[date]

		sort.SliceStable(dateBookings, func(i, j int) bool {
			return dateBookings[i].start < dateBookings[j].start
		})

		for i := 0; i < len(dateBookings)-1; i++ {
			current := dateBookings[i]
			next := dateBookings[i+1]

			if next.start > current.end {
				gaps = append(gaps, domain.Gap{
					Date: date,
					Before: domain.GapBefore{
						ID:      current.booking.ID,
						User:    current.booking.UserName,
						EndTime: current.booking.EndTime,
					},
					After: domain.GapAfter{
						ID:        next.booking.ID,
						User:      next.booking.UserName,
						StartTime: next.booking.StartTime,
					},
					GapDurationMinutes: next.start - current.end,
					GapStart:           current.booking.EndTime,
					GapEnd:             next.booking.StartTime,
				})
			}
		}
	}

	return gaps
}

func toBookingRef(b *domain.Booking) domain.BookingRef {
	return domain.BookingRef{
		ID:        b.ID,
		User:      b.UserName,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
