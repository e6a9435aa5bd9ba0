package reserve_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindSlotConflict(ctx context.Context, ground string, date time.Time, slots []string, excludeBookingID *int64) (*domain.SlotConflict, error)
}

// FrozenSlotRepository интерфейс репозитория административных блокировок
type FrozenSlotRepository interface {
	FindActive(ctx context.Context, ground string, date time.Time, slots []string) (*domain.SlotFreeze, error)
}

// TransactionManager интерфейс для управления транзакциями.
// На транзакционном пути проверки и вставка видят один снимок данных;
// на деградированном пути DoSerializable выполняет функцию напрямую,
// и гонку ловит уникальное ограничение хранилища.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
