package get_frozen_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

type DayScheduleUseCase interface {
	ListFrozenSlots(ctx context.Context, ground string, date time.Time) ([]domain.FrozenSlotEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
