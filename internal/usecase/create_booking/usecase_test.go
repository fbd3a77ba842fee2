package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/conflictcheck"
	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 42
	booking.CreatedAt = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
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
	err    error
	called bool
	inTx   bool
}

type txMarker struct{}

func (f *fakeValidator) ValidateNoOverlap(ctx context.Context, _ int64, _ time.Time,
	_ types.TimeString, _ types.TimeString, _ *int64) error {
	f.called = true
	f.inTx = ctx.Value(txMarker{}) != nil
	return f.err
}

// fakeTxManager помечает контекст, чтобы тест мог убедиться,
// что проверка пересечений выполняется внутри транзакции
type fakeTxManager struct {
	called bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.called = true
	return fn(context.WithValue(ctx, txMarker{}, true))
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		UserID:    1,
		Date:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func newTestUseCase(validatorErr error) (*UseCase, *fakeBookingRepo, *fakeValidator, *fakeTxManager) {
	repo := &fakeBookingRepo{}
	users := &fakeUserProvider{users: map[int64]*domain.User{1: {ID: 1, Name: "Alice"}}}
	validator := &fakeValidator{err: validatorErr}
	tx := &fakeTxManager{}
	return NewUseCase(repo, users, validator, tx, noopLogger{}), repo, validator, tx
}

func TestExecute_Success(t *testing.T) {
	uc, repo, validator, tx := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Alice", resp.UserName)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	// Проверка пересечений выполнена внутри сериализуемой транзакции
	assert.True(t, tx.called)
	assert.True(t, validator.called)
	assert.True(t, validator.inTx)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(1), repo.created.UserID)
}

func TestExecute_OverlapRejected(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(conflictcheck.ErrOverlapConflict)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBookingOverlap)
	assert.Nil(t, repo.created, "booking must not be created on overlap")
}

func TestExecute_UserNotFound(t *testing.T) {
	uc, _, validator, _ := newTestUseCase(nil)

	req := validRequest()
	req.UserID = 999

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, validator.called)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "non-positive user id",
			mutate:  func(r *Request) { r.UserID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero date",
			mutate:  func(r *Request) { r.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing start time",
			mutate:  func(r *Request) { r.StartTime = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed end time",
			mutate:  func(r *Request) { r.EndTime = "25:00" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end equals start",
			mutate:  func(r *Request) { r.EndTime = r.StartTime },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "end before start",
			mutate:  func(r *Request) { r.StartTime = "11:00"; r.EndTime = "10:00" },
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _, _ := newTestUseCase(nil)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}
}
