package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetReportable(ctx context.Context, ground string, date time.Time) ([]*domain.Booking, error)
}

// FrozenSlotRepository интерфейс репозитория административных блокировок
type FrozenSlotRepository interface {
	ListActive(ctx context.Context, ground string, date time.Time) ([]*domain.FrozenSlot, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
