package conflictcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	"github.com/avdmitr/BCA-BookingChecker/pkg/ptr"
	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// fakeBookingProvider тестовая реализация BookingProvider
type fakeBookingProvider struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingProvider) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingProvider) GetAllForConflictCheck(_ context.Context) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(bookings ...*domain.Booking) *Service {
	return NewService(&fakeBookingProvider{bookings: bookings}, noopLogger{})
}

func date(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func booking(id, userID int64, userName string, day int, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		UserName:  userName,
		Date:      date(day),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestValidateNoOverlap(t *testing.T) {
	tests := []struct {
		name      string
		existing  []*domain.Booking
		userID    int64
		day       int
		start     string
		end       string
		excludeID *int64
		wantErr   error
	}{
		{
			name:     "no existing bookings",
			existing: nil,
			userID:   1, day: 15, start: "09:00", end: "10:00",
		},
		{
			name:     "boundary touch at end is not a conflict",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "09:00", "10:00")},
			userID:   1, day: 15, start: "10:00", end: "11:00",
		},
		{
			name:     "boundary touch at start is not a conflict",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "10:00", "11:00")},
			userID:   1, day: 15, start: "09:00", end: "10:00",
		},
		{
			name:     "exact duplicate conflicts",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "09:00", "10:00")},
			userID:   1, day: 15, start: "09:00", end: "10:00",
			wantErr: ErrOverlapConflict,
		},
		{
			name:     "partial overlap at start conflicts",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "09:00", "10:00")},
			userID:   1, day: 15, start: "09:30", end: "10:30",
			wantErr: ErrOverlapConflict,
		},
		{
			name:     "candidate contains existing",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "10:00", "11:00")},
			userID:   1, day: 15, start: "09:00", end: "12:00",
			wantErr: ErrOverlapConflict,
		},
		{
			name:     "existing contains candidate",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "09:00", "12:00")},
			userID:   1, day: 15, start: "10:00", end: "11:00",
			wantErr: ErrOverlapConflict,
		},
		{
			name:     "different dates never overlap",
			existing: []*domain.Booking{booking(1, 1, "Alice", 15, "09:00", "10:00")},
			userID:   1, day: 16, start: "09:00", end: "10:00",
		},
		{
			name:     "other owner's identical slot is not checked",
			existing: []*domain.Booking{booking(1, 2, "Bob", 15, "09:00", "10:00")},
			userID:   1, day: 15, start: "09:00", end: "10:00",
		},
		{
			name:      "exclude id skips own prior state on update",
			existing:  []*domain.Booking{booking(7, 1, "Alice", 15, "09:00", "10:00")},
			userID:    1, day: 15, start: "09:00", end: "10:00",
			excludeID: ptr.Ptr(int64(7)),
		},
		{
			name: "exclude id still catches other bookings",
			existing: []*domain.Booking{
				booking(7, 1, "Alice", 15, "09:00", "10:00"),
				booking(8, 1, "Alice", 15, "10:30", "11:30"),
			},
			userID:    1, day: 15, start: "09:00", end: "11:00",
			excludeID: ptr.Ptr(int64(7)),
			wantErr:   ErrOverlapConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.existing...)

			err := svc.ValidateNoOverlap(context.Background(), tt.userID, date(tt.day),
				types.TimeString(tt.start), types.TimeString(tt.end), tt.excludeID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateNoOverlap_Symmetry(t *testing.T) {
	// overlap(b1, b2) == overlap(b2, b1): кандидат и существующее
	// бронирование можно менять местами без изменения результата
	ranges := [][2]string{
		{"09:00", "10:00"},
		{"09:30", "10:30"},
		{"10:00", "11:00"},
		{"08:00", "12:00"},
	}

	for i := range ranges {
		for j := range ranges {
			svcA := newTestService(booking(1, 1, "Alice", 15, ranges[j][0], ranges[j][1]))
			errA := svcA.ValidateNoOverlap(context.Background(), 1, date(15),
				types.TimeString(ranges[i][0]), types.TimeString(ranges[i][1]), nil)

			svcB := newTestService(booking(1, 1, "Alice", 15, ranges[i][0], ranges[i][1]))
			errB := svcB.ValidateNoOverlap(context.Background(), 1, date(15),
				types.TimeString(ranges[j][0]), types.TimeString(ranges[j][1]), nil)

			assert.Equal(t, errA == nil, errB == nil,
				"overlap must be symmetric for %v vs %v", ranges[i], ranges[j])
		}
	}
}

func TestValidateNoOverlap_ProviderError(t *testing.T) {
	providerErr := errors.New("connection refused")
	svc := NewService(&fakeBookingProvider{err: providerErr}, noopLogger{})

	err := svc.ValidateNoOverlap(context.Background(), 1, date(15), "09:00", "10:00", nil)
	require.ErrorIs(t, err, ErrInternal)
}

func TestValidateNoOverlap_MalformedStoredTime(t *testing.T) {
	// Некорректное время в хранимых данных должно приводить к громкой
	// ошибке, а не к тихому пропуску записи
	svc := newTestService(booking(1, 1, "Alice", 15, "garbage", "10:00"))

	err := svc.ValidateNoOverlap(context.Background(), 1, date(15), "09:00", "10:00", nil)
	require.ErrorIs(t, err, ErrInternal)
}
