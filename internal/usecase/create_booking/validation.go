package create_booking

import (
	"fmt"

	"github.com/avdmitr/BCA-BookingChecker/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return validateTimeLogic(req.StartTime, req.EndTime)
}

// validateTimeLogic проверяет, что окончание строго позже начала.
// Эта проверка отделена от проверки пересечений: она относится
// к форме самого диапазона, а не к соседним бронированиям.
func validateTimeLogic(startTime, endTime types.TimeString) error {
	if !endTime.IsAfter(startTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
