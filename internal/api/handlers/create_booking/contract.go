package create_booking

import (
	"context"

	reserveSlots "github.com/m04kA/SMC-GroundBookingService/internal/usecase/reserve_slots"
)

type ReserveSlotsUseCase interface {
	Execute(ctx context.Context, req *reserveSlots.Request) (*reserveSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
