package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/statistics/models"
)

// Service сервис статистики для админ-панели:
// количество бронирований и регистраций по интервалам периода
type Service struct {
	bookingCounter BookingCounter
	userProvider   UserProvider
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(bookingCounter BookingCounter, userProvider UserProvider, logger Logger) *Service {
	return &Service{
		bookingCounter: bookingCounter,
		userProvider:   userProvider,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// interval один интервал отчета с границами по created_at
type interval struct {
	label string
	start time.Time
	end   time.Time
}

// GetStatistics строит отчет за период: daily (7 дней), weekly (7 недель),
// yearly (7 месяцев). Неизвестный период трактуется как daily.
func (s *Service) GetStatistics(ctx context.Context, period string) (*models.StatisticsResponse, error) {
	switch period {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodYearly:
	default:
		s.logger.Warn("GetStatistics: unknown period %q, falling back to daily", period)
		period = domain.PeriodDaily
	}

	s.logger.Info("GetStatistics: building report for period=%s", period)

	intervals := s.buildIntervals(period)

	result := make([]models.IntervalStats, 0, len(intervals))
	totalBookings := 0
	totalSignups := 0

	for _, iv := range intervals {
		bookings, err := s.bookingCounter.CountCreatedBetween(ctx, iv.start, iv.end)
		if err != nil {
			s.logger.Error("GetStatistics: failed to count bookings for %s: %v", iv.label, err)
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		signups, err := s.userProvider.CountCreatedBetween(ctx, iv.start, iv.end)
		if err != nil {
			s.logger.Error("GetStatistics: failed to count signups for %s: %v", iv.label, err)
			return nil, fmt.Errorf("%w: failed to count signups: %v", ErrInternal, err)
		}

		result = append(result, models.IntervalStats{
			Date:     iv.label,
			Bookings: bookings,
			Signups:  signups,
		})
		totalBookings += bookings
		totalSignups += signups
	}

	recentUsers, err := s.userProvider.GetRecent(ctx, domain.RecentSignupsLimit)
	if err != nil {
		s.logger.Error("GetStatistics: failed to fetch recent signups: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch recent signups: %v", ErrInternal, err)
	}

	recentSignups := make([]models.RecentSignup, 0, len(recentUsers))
	for _, u := range recentUsers {
		recentSignups = append(recentSignups, models.RecentSignup{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	return &models.StatisticsResponse{
		Period:        period,
		Intervals:     result,
		RecentSignups: recentSignups,
		Summary: models.Summary{
			TotalBookings: totalBookings,
			TotalSignups:  totalSignups,
		},
	}, nil
}

// buildIntervals строит 7 последних интервалов периода, от старых к новым
func (s *Service) buildIntervals(period string) []interval {
	now := s.timeProvider.Now()
	intervals := make([]interval, 0, domain.StatisticsIntervals)

	switch period {
	case domain.PeriodWeekly:
		// Последние 7 недель, неделя начинается с понедельника
		for i := domain.StatisticsIntervals - 1; i >= 0; i-- {
			weekStart := startOfWeek(now).AddDate(0, 0, -7*i)
			weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
			intervals = append(intervals, interval{
				label: "Week of " + weekStart.Format("Jan 02"),
				start: weekStart,
				end:   weekEnd,
			})
		}

	case domain.PeriodYearly:
		// Последние 7 месяцев - практичнее, чем 7 лет
		for i := domain.StatisticsIntervals - 1; i >= 0; i-- {
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
			intervals = append(intervals, interval{
				label: monthStart.Format("Jan 2006"),
				start: monthStart,
				end:   monthEnd,
			})
		}

	default: // daily
		for i := domain.StatisticsIntervals - 1; i >= 0; i-- {
			dayStart := startOfDay(now).AddDate(0, 0, -i)
			dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
			intervals = append(intervals, interval{
				label: dayStart.Format(domain.DateFormat),
				start: dayStart,
				end:   dayEnd,
			})
		}
	}

	return intervals
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	// time.Weekday: Sunday = 0, неделя в отчете начинается с понедельника
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
