package reserve_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidGround(req.Ground) {
		return fmt.Errorf("%w: unknown ground %q", ErrInvalidInput, req.Ground)
	}

	if req.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}

	if len(req.Sport) > domain.MaxSportLength {
		return fmt.Errorf("%w: sport is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	for _, slot := range req.Slots {
		if !domain.ValidateSlotID(slot) {
			return fmt.Errorf("%w: malformed slot identifier %q", ErrInvalidInput, slot)
		}
	}

	// Инвариант составного набора: слот внутри бронирования не повторяется
	if domain.HasDuplicateSlots(req.Slots) {
		return fmt.Errorf("%w: duplicate slot in request", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
