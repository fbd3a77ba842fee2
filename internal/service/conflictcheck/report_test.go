package conflictcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

func TestGenerateConflictReport_EmptyInput(t *testing.T) {
	svc := newTestService()

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Overlapping)
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.Gaps)
	assert.Equal(t, domain.ConflictSummary{}, report.Summary)
}

func TestGenerateConflictReport_PartialOverlap(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "09:30", "10:30"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Overlapping, 1)
	pair := report.Overlapping[0]
	assert.Equal(t, int64(1), pair.Booking1.ID)
	assert.Equal(t, int64(2), pair.Booking2.ID)
	assert.Equal(t, "Alice", pair.Booking1.User)
	assert.Equal(t, "Bob", pair.Booking2.User)
	assert.Equal(t, "2026-01-15", pair.Booking1.Date)
	assert.Equal(t, domain.OverlapTypePartial, pair.OverlapType)

	assert.Empty(t, report.Conflicts)
	assert.Equal(t, 2, report.Summary.TotalBookings)
	assert.Equal(t, 1, report.Summary.OverlappingCount)
	assert.Equal(t, 0, report.Summary.ConflictCount)
}

func TestGenerateConflictReport_ExactMatchIsConflictNotOverlap(t *testing.T) {
	// Точный дубликат попадает только в conflicts, не в overlapping
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "09:00", "10:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Overlapping)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, domain.ConflictTypeExactMatch, report.Conflicts[0].ConflictType)
	assert.Equal(t, int64(1), report.Conflicts[0].Booking1.ID)
	assert.Equal(t, int64(2), report.Conflicts[0].Booking2.ID)
}

func TestGenerateConflictReport_CrossOwnerPairsIncluded(t *testing.T) {
	// В отличие от ValidateNoOverlap отчет учитывает пары разных пользователей
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "09:00", "10:00"),
		booking(3, 3, "Carol", 15, "09:45", "11:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	// (1,2) - точный дубликат; (1,3) и (2,3) - частичные пересечения
	assert.Len(t, report.Conflicts, 1)
	assert.Len(t, report.Overlapping, 2)
}

func TestGenerateConflictReport_DifferentDatesNeverPair(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 16, "09:00", "10:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Overlapping)
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.Gaps)
}

func TestGenerateConflictReport_BoundaryTouchIsNotOverlap(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "10:00", "11:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Overlapping)
	assert.Empty(t, report.Conflicts)
	// Примыкание - не простой: зазор нулевой
	assert.Empty(t, report.Gaps)
}

func TestGenerateConflictReport_GapArithmetic(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "10:30", "11:30"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Gaps, 1)
	gap := report.Gaps[0]
	assert.Equal(t, "2026-01-15", gap.Date)
	assert.Equal(t, 30, gap.GapDurationMinutes)
	assert.Equal(t, "10:00", gap.GapStart.String())
	assert.Equal(t, "10:30", gap.GapEnd.String())
	assert.Equal(t, int64(1), gap.Before.ID)
	assert.Equal(t, "Alice", gap.Before.User)
	assert.Equal(t, int64(2), gap.After.ID)
	assert.Equal(t, "Bob", gap.After.User)
	assert.Equal(t, 1, report.Summary.GapCount)
}

func TestGenerateConflictReport_GapsSortedByStartWithinDate(t *testing.T) {
	// Порядок выборки не отсортирован - сортировка внутри даты обязана
	// восстановить хронологию перед поиском простоев
	svc := newTestService(
		booking(3, 3, "Carol", 15, "14:00", "15:00"),
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "11:00", "12:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Gaps, 2)
	assert.Equal(t, 60, report.Gaps[0].GapDurationMinutes) // 10:00 -> 11:00
	assert.Equal(t, int64(1), report.Gaps[0].Before.ID)
	assert.Equal(t, 120, report.Gaps[1].GapDurationMinutes) // 12:00 -> 14:00
	assert.Equal(t, int64(2), report.Gaps[1].Before.ID)
}

func TestGenerateConflictReport_GapsGroupedByDate(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "11:00", "12:00"),
		booking(3, 1, "Alice", 16, "09:00", "10:00"),
		booking(4, 2, "Bob", 16, "10:15", "11:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Gaps, 2)
	assert.Equal(t, "2026-01-15", report.Gaps[0].Date)
	assert.Equal(t, 60, report.Gaps[0].GapDurationMinutes)
	assert.Equal(t, "2026-01-16", report.Gaps[1].Date)
	assert.Equal(t, 15, report.Gaps[1].GapDurationMinutes)
}

func TestGenerateConflictReport_OverlappingBookingsProduceNoGap(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "11:00"),
		booking(2, 2, "Bob", 15, "10:00", "12:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Overlapping, 1)
	assert.Empty(t, report.Gaps)
}

func TestGenerateConflictReport_SummaryCounts(t *testing.T) {
	svc := newTestService(
		booking(1, 1, "Alice", 15, "09:00", "10:00"),
		booking(2, 2, "Bob", 15, "09:00", "10:00"),  // дубликат с 1
		booking(3, 3, "Carol", 15, "09:30", "10:30"), // пересечение с 1 и 2
		booking(4, 1, "Alice", 15, "11:00", "12:00"), // простой после 10:30
		booking(5, 2, "Bob", 17, "08:00", "09:00"),
	)

	report, err := svc.GenerateConflictReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Summary.TotalBookings)
	assert.Equal(t, len(report.Overlapping), report.Summary.OverlappingCount)
	assert.Equal(t, len(report.Conflicts), report.Summary.ConflictCount)
	assert.Equal(t, len(report.Gaps), report.Summary.GapCount)
	assert.Equal(t, 2, report.Summary.OverlappingCount)
	assert.Equal(t, 1, report.Summary.ConflictCount)
	assert.Equal(t, 1, report.Summary.GapCount)
}

func TestGenerateConflictReport_ProviderError(t *testing.T) {
	providerErr := errors.New("connection refused")
	svc := NewService(&fakeBookingProvider{err: providerErr}, noopLogger{})

	_, err := svc.GenerateConflictReport(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}

func TestGenerateConflictReport_MalformedStoredTime(t *testing.T) {
	svc := newTestService(booking(1, 1, "Alice", 15, "09:00", "25:99"))

	_, err := svc.GenerateConflictReport(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}
