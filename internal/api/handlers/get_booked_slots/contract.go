package get_booked_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

type DayScheduleUseCase interface {
	ListBookedSlots(ctx context.Context, ground string, date time.Time) ([]domain.BookedSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
