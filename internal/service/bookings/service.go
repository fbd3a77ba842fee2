package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
	bookingRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/booking"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	"github.com/avdmitr/BCA-BookingChecker/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo      BookingRepository
	userProvider     UserProvider
	conflictReporter ConflictReporter
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userProvider UserProvider,
	conflictReporter ConflictReporter,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		userProvider:     userProvider,
		conflictReporter: conflictReporter,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, админ - любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает список бронирований
// Админ видит все бронирования системы, обычный пользователь - только свои
func (s *Service) List(ctx context.Context, requesterID int64) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d", requesterID)

	requester, err := s.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{}
	if !requester.IsAdmin {
		filter.UserID = &requester.ID
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%d (admin=%t)", len(bookings), requesterID, requester.IsAdmin)
	return models.FromDomainBookingList(bookings), nil
}

// Delete удаляет бронирование
// Пользователь может удалить только своё, админ - любое
func (s *Service) Delete(ctx context.Context, id int64, requesterID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, requesterID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to booking id=%d", requesterID, id)
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Validate проверяет конкретное бронирование на участие в конфликтах.
// Строит полный отчет и оставляет только пары, где фигурирует bookingID.
func (s *Service) Validate(ctx context.Context, bookingID int64, requesterID int64) (*models.ValidationResponse, error) {
	s.logger.Info("Validate: validating booking id=%d for user=%d", bookingID, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Validate: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Validate: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, requesterID); err != nil {
		s.logger.Warn("Validate: access denied for user=%d to booking id=%d", requesterID, bookingID)
		return nil, err
	}

	report, err := s.conflictReporter.GenerateConflictReport(ctx)
	if err != nil {
		s.logger.Error("Validate: failed to generate conflict report: %v", err)
		return nil, fmt.Errorf("%w: Validate - conflict report error: %v", ErrInternal, err)
	}

	overlapping := make([]domain.OverlapPair, 0)
	for _, pair := range report.Overlapping {
		if pair.Booking1.ID == bookingID || pair.Booking2.ID == bookingID {
			overlapping = append(overlapping, pair)
		}
	}

	conflicts := make([]domain.ConflictPair, 0)
	for _, pair := range report.Conflicts {
		if pair.Booking1.ID == bookingID || pair.Booking2.ID == bookingID {
			conflicts = append(conflicts, pair)
		}
	}

	s.logger.Info("Validate: booking id=%d has %d overlapping and %d exact conflicts",
		bookingID, len(overlapping), len(conflicts))

	return &models.ValidationResponse{
		Booking:      models.FromDomainBooking(booking),
		HasConflicts: len(overlapping) > 0 || len(conflicts) > 0,
		Overlapping:  overlapping,
		Conflicts:    conflicts,
	}, nil
}

// DeleteOldBookings удаляет бронирования старше retentionDays дней
// Вызывается фоновой задачей
func (s *Service) DeleteOldBookings(ctx context.Context, retentionDays int) (int64, error) {
	deleted, err := s.bookingRepo.DeleteOlderThan(ctx, retentionDays)
	if err != nil {
		s.logger.Error("DeleteOldBookings: repository error: %v", err)
		return 0, fmt.Errorf("%w: DeleteOldBookings - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("DeleteOldBookings: deleted %d bookings older than %d days", deleted, retentionDays)
	}
	return deleted, nil
}

// checkBookingAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца и у админа
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, requesterID int64) error {
	if booking.UserID == requesterID {
		return nil
	}

	requester, err := s.getUser(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin {
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("getUser: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("getUser: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}
