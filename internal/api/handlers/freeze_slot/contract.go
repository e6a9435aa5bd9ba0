package freeze_slot

import (
	"context"

	"github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots/models"
)

type FrozenSlotService interface {
	Freeze(ctx context.Context, req *models.FreezeSlotRequest) (*models.FrozenSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
