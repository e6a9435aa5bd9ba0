package check_conflict

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindSlotConflict(ctx context.Context, ground string, date time.Time, slots []string, excludeBookingID *int64) (*domain.SlotConflict, error)
}

// FrozenSlotRepository интерфейс репозитория административных блокировок
type FrozenSlotRepository interface {
	FindActive(ctx context.Context, ground string, date time.Time, slots []string) (*domain.SlotFreeze, error)
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
