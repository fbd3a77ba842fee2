package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/conflictcheck"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	userProvider     UserProvider
	overlapValidator OverlapValidator
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userProvider UserProvider,
	overlapValidator OverlapValidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		userProvider:     userProvider,
		overlapValidator: overlapValidator,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений выполняется всегда и внутри сериализуемой
// транзакции вместе со вставкой - между проверкой и записью не может
// вклиниться конкурентное бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, date=%s, time=%s-%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных и логики времени
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование пользователя (и берем имя для ответа)
	user, err := uc.userProvider.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Проверка пересечений и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.overlapValidator.ValidateNoOverlap(
			txCtx, req.UserID, req.Date, req.StartTime, req.EndTime, nil,
		); err != nil {
			if errors.Is(err, conflictcheck.ErrOverlapConflict) {
				uc.logger.Warn("CreateBooking: overlap detected for user=%d on %s",
					req.UserID, req.Date.Format(domain.DateFormat))
				return ErrBookingOverlap
			}
			uc.logger.Error("CreateBooking: overlap validation failed: %v", err)
			return fmt.Errorf("%w: overlap validation failed: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			UserID:    req.UserID,
			UserName:  user.Name,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		UserName:  user.Name,
		Date:      result.Date,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
