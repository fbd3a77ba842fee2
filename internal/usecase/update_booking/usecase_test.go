package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	bookingRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/booking"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/conflictcheck"
	"github.com/avdmitr/BCA-BookingChecker/pkg/ptr"
	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	updated *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	f.updated = booking
	return nil
}

type fakeUserProvider struct {
	users map[int64]*domain.User
}

func (f *fakeUserProvider) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeValidator struct {
	err error

	gotUserID  int64
	gotDate    time.Time
	gotStart   types.TimeString
	gotEnd     types.TimeString
	gotExclude *int64
}

func (f *fakeValidator) ValidateNoOverlap(_ context.Context, userID int64, date time.Time,
	startTime types.TimeString, endTime types.TimeString, excludeBookingID *int64) error {
	f.gotUserID = userID
	f.gotDate = date
	f.gotStart = startTime
	f.gotEnd = endTime
	f.gotExclude = excludeBookingID
	return f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:        7,
		UserID:    1,
		UserName:  "Alice",
		Date:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

func newTestUseCase(validatorErr error) (*UseCase, *fakeBookingRepo, *fakeValidator) {
	repo := &fakeBookingRepo{booking: existingBooking()}
	users := &fakeUserProvider{users: map[int64]*domain.User{
		1:   {ID: 1, Name: "Alice"},
		2:   {ID: 2, Name: "Bob"},
		100: {ID: 100, Name: "Admin", IsAdmin: true},
	}}
	validator := &fakeValidator{err: validatorErr}
	return NewUseCase(repo, users, validator, fakeTxManager{}, noopLogger{}), repo, validator
}

func TestExecute_MergesPartialUpdate(t *testing.T) {
	uc, repo, validator := newTestUseCase(nil)

	// Меняем только время окончания - дата и начало берутся из текущего состояния
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 1,
		EndTime:     ptr.Ptr(types.TimeString("11:30")),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	require.NotNil(t, repo.updated)
	assert.Equal(t, types.TimeString("11:30"), repo.updated.EndTime)

	// Валидатор получил объединенный диапазон и exclude id редактируемого бронирования
	assert.Equal(t, int64(1), validator.gotUserID)
	assert.Equal(t, types.TimeString("09:00"), validator.gotStart)
	assert.Equal(t, types.TimeString("11:30"), validator.gotEnd)
	require.NotNil(t, validator.gotExclude)
	assert.Equal(t, int64(7), *validator.gotExclude)
}

func TestExecute_SameSlotDoesNotConflictWithItself(t *testing.T) {
	// Валидатор с exclude id не должен вернуть конфликт для собственного слота;
	// usecase просто передает exclude id - здесь проверяем, что обновление
	// на те же значения проходит
	uc, _, validator := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 1,
		StartTime:   ptr.Ptr(types.TimeString("09:00")),
		EndTime:     ptr.Ptr(types.TimeString("10:00")),
	})
	require.NoError(t, err)
	require.NotNil(t, validator.gotExclude)
}

func TestExecute_OverlapRejected(t *testing.T) {
	uc, repo, _ := newTestUseCase(conflictcheck.ErrOverlapConflict)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 1,
		StartTime:   ptr.Ptr(types.TimeString("10:00")),
		EndTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	require.ErrorIs(t, err, ErrBookingOverlap)
	assert.Nil(t, repo.updated)
}

func TestExecute_Access(t *testing.T) {
	// Чужой пользователь не может править бронирование
	uc, _, _ := newTestUseCase(nil)
	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 2,
		EndTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	// Админ может
	uc, repo, validator := newTestUseCase(nil)
	_, err = uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 100,
		EndTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	// Проверка пересечений идет против владельца, а не админа
	assert.Equal(t, int64(1), validator.gotUserID)
}

func TestExecute_InvalidMergedTimeRange(t *testing.T) {
	uc, repo, _ := newTestUseCase(nil)

	// Начало 09:00 остается, окончание сдвигается раньше начала
	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		RequesterID: 1,
		EndTime:     ptr.Ptr(types.TimeString("08:00")),
	})
	require.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Nil(t, repo.updated)
}

func TestExecute_NotFoundAndEmptyUpdate(t *testing.T) {
	uc, _, _ := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   999,
		RequesterID: 1,
		EndTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	require.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 7, RequesterID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
