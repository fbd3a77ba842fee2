package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	bookingRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/booking"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/conflictcheck"
)

// UseCase use case для обновления бронирования
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

// Execute выполняет use case обновления бронирования.
// Непереданные поля сливаются с текущим состоянием, после чего
// объединенный диапазон проходит проверку логики времени и проверку
// пересечений с исключением самого редактируемого бронирования -
// бронирование не конфликтует со своим прежним состоянием.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, requester=%d", req.BookingID, req.RequesterID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// Получаем текущее состояние бронирования
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Проверяем права: владелец или админ
	if err := uc.checkAccess(ctx, booking, req.RequesterID); err != nil {
		uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d",
			req.RequesterID, req.BookingID)
		return nil, err
	}

	// Сливаем частичное обновление с текущими значениями
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.StartTime != nil {
		booking.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}

	if !booking.EndTime.IsAfter(booking.StartTime) {
		uc.logger.Warn("UpdateBooking: invalid time range %s-%s for booking id=%d",
			booking.StartTime, booking.EndTime, req.BookingID)
		return nil, ErrInvalidTimeRange
	}

	// Проверка пересечений и запись в одной сериализуемой транзакции.
	// Исключаем редактируемое бронирование, проверяем против владельца
	// бронирования, а не инициатора запроса (админ может править чужое).
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.overlapValidator.ValidateNoOverlap(
			txCtx, booking.UserID, booking.Date, booking.StartTime, booking.EndTime, &booking.ID,
		); err != nil {
			if errors.Is(err, conflictcheck.ErrOverlapConflict) {
				uc.logger.Warn("UpdateBooking: overlap detected for booking id=%d", req.BookingID)
				return ErrBookingOverlap
			}
			uc.logger.Error("UpdateBooking: overlap validation failed: %v", err)
			return fmt.Errorf("%w: overlap validation failed: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", req.BookingID)

	return &Response{
		ID:        booking.ID,
		UserID:    booking.UserID,
		UserName:  booking.UserName,
		Date:      booking.Date,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.EndTime == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// checkAccess проверяет, что запрос выполняет владелец бронирования или админ
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, requesterID int64) error {
	if booking.UserID == requesterID {
		return nil
	}

	requester, err := uc.userProvider.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}

	if !requester.IsAdmin {
		return ErrAccessDenied
	}

	return nil
}
