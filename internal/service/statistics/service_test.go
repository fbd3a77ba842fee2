package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

type fakeBookingCounter struct {
	counts map[string]int // ключ - дата начала интервала YYYY-MM-DD
}

func (f *fakeBookingCounter) CountCreatedBetween(_ context.Context, from, _ time.Time) (int, error) {
	return f.counts[from.Format(domain.DateFormat)], nil
}

type fakeUserProvider struct {
	signups map[string]int
	recent  []*domain.User
}

func (f *fakeUserProvider) CountCreatedBetween(_ context.Context, from, _ time.Time) (int, error) {
	return f.signups[from.Format(domain.DateFormat)], nil
}

func (f *fakeUserProvider) GetRecent(_ context.Context, limit int) ([]*domain.User, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestGetStatistics_Daily(t *testing.T) {
	// Среда 2026-01-14
	now := time.Date(2026, 1, 14, 15, 30, 0, 0, time.UTC)

	bookings := &fakeBookingCounter{counts: map[string]int{
		"2026-01-14": 3,
		"2026-01-13": 1,
		"2026-01-08": 2,
	}}
	users := &fakeUserProvider{
		signups: map[string]int{"2026-01-14": 1},
		recent: []*domain.User{
			{ID: 2, Name: "Bob", Email: "bob@example.com", CreatedAt: now},
			{ID: 1, Name: "Alice", Email: "alice@example.com", CreatedAt: now.Add(-time.Hour)},
		},
	}

	svc := NewService(bookings, users, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := svc.GetStatistics(context.Background(), domain.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodDaily, resp.Period)
	require.Len(t, resp.Intervals, 7)

	// Интервалы идут от старых к новым, последний - сегодня
	assert.Equal(t, "2026-01-08", resp.Intervals[0].Date)
	assert.Equal(t, "2026-01-14", resp.Intervals[6].Date)
	assert.Equal(t, 3, resp.Intervals[6].Bookings)
	assert.Equal(t, 1, resp.Intervals[6].Signups)

	assert.Equal(t, 6, resp.Summary.TotalBookings)
	assert.Equal(t, 1, resp.Summary.TotalSignups)

	require.Len(t, resp.RecentSignups, 2)
	assert.Equal(t, "Bob", resp.RecentSignups[0].Name)
}

func TestGetStatistics_WeeklyIntervalsStartOnMonday(t *testing.T) {
	// Среда 2026-01-14: начало текущей недели - понедельник 2026-01-12
	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

	svc := NewService(&fakeBookingCounter{}, &fakeUserProvider{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := svc.GetStatistics(context.Background(), domain.PeriodWeekly)
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 7)
	assert.Equal(t, "Week of Jan 12", resp.Intervals[6].Date)
	assert.Equal(t, "Week of Dec 01", resp.Intervals[0].Date)
}

func TestGetStatistics_YearlyUsesMonths(t *testing.T) {
	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

	svc := NewService(&fakeBookingCounter{}, &fakeUserProvider{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := svc.GetStatistics(context.Background(), domain.PeriodYearly)
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 7)
	assert.Equal(t, "Jul 2025", resp.Intervals[0].Date)
	assert.Equal(t, "Jan 2026", resp.Intervals[6].Date)
}

func TestGetStatistics_UnknownPeriodFallsBackToDaily(t *testing.T) {
	svc := NewService(&fakeBookingCounter{}, &fakeUserProvider{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)}

	resp, err := svc.GetStatistics(context.Background(), "hourly")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDaily, resp.Period)
}
