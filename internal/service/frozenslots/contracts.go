package frozenslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// FrozenSlotRepository интерфейс репозитория административных блокировок
type FrozenSlotRepository interface {
	Create(ctx context.Context, frozen *domain.FrozenSlot) (*domain.FrozenSlot, error)
	Deactivate(ctx context.Context, id int64) error
	ListActive(ctx context.Context, ground string, date time.Time) ([]*domain.FrozenSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
