package reserve_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/pkg/txmanager"
)

// UseCase use case атомарного резервирования слотов.
//
// Решение и запись выполняются как одно неделимое целое:
// проверка конфликтов -> проверка блокировок -> вставка. Любой отказ
// проверки прерывает операцию без какой-либо записи; при многослотовом
// запросе либо резервируются все слоты одним бронированием, либо ни одного.
type UseCase struct {
	bookingRepo  BookingRepository
	frozenRepo   FrozenSlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	frozenRepo FrozenSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		frozenRepo:   frozenRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case резервирования слотов.
//
// Проверки выполняются внутри сериализуемой транзакции и видят согласованный
// снимок: из двух конкурентных запросов на пересекающиеся слоты ровно один
// фиксируется. На деградированном пути (без транзакций) ту же гарантию в
// ослабленном виде даёт уникальный индекс по (ground, booking_date, slot) -
// проигравший получает ErrSlotJustTaken и может повторить запрос по свежему
// расписанию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlots: ground=%s, date=%s, sport=%s, slots=%v",
		req.Ground, req.Date.Format(domain.DateFormat), req.Sport, req.Slots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ReserveSlots: date validation failed: %v", err)
		return nil, err
	}

	payload := req.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Проверки и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Конфликты с подтверждёнными бронированиями на том же поле и
		// дате - по всем видам спорта, запрашивающий не исключение
		conflict, err := uc.bookingRepo.FindSlotConflict(txCtx, req.Ground, req.Date, req.Slots, nil)
		if err != nil {
			uc.logger.Error("ReserveSlots: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("ReserveSlots: slot %s is held by %s (booking id=%d)",
				conflict.Slot, conflict.Sport, conflict.BookingID)
			return &ConflictError{
				Slot:      conflict.Slot,
				Sport:     conflict.Sport,
				BookingID: conflict.BookingID,
			}
		}

		// 3.2. Административные блокировки - тоже по всем видам спорта
		freeze, err := uc.frozenRepo.FindActive(txCtx, req.Ground, req.Date, req.Slots)
		if err != nil {
			uc.logger.Error("ReserveSlots: frozen check failed: %v", err)
			return fmt.Errorf("%w: frozen check failed: %v", ErrInternal, err)
		}
		if freeze != nil {
			uc.logger.Warn("ReserveSlots: slot %s is frozen under %s", freeze.Slot, freeze.Sport)
			return &FrozenError{
				Slot:  freeze.Slot,
				Sport: freeze.Sport,
			}
		}

		// 3.3. Вставка: одно бронирование на весь составной набор слотов
		booking := &domain.Booking{
			Ground:      req.Ground,
			BookingDate: req.Date,
			Sport:       req.Sport,
			Slots:       domain.JoinSlotSet(req.Slots),
			Status:      domain.StatusConfirmed,
			Payload:     payload,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("ReserveSlots: lost the race, slot was just taken: ground=%s, date=%s",
					req.Ground, req.Date.Format(domain.DateFormat))
				return ErrSlotJustTaken
			}
			uc.logger.Error("ReserveSlots: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Срыв сериализации означает проигранную гонку: транзакция не
		// зафиксирована, запись не состоялась, повтор имеет смысл
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("ReserveSlots: serialization failure, treating as lost race: %v", err)
			return nil, ErrSlotJustTaken
		}
		return nil, err
	}

	uc.logger.Info("ReserveSlots: successfully created booking id=%d covering %q", result.ID, result.Slots)

	return &Response{
		ID:        result.ID,
		Ground:    result.Ground,
		Date:      result.BookingDate,
		Sport:     result.Sport,
		Slots:     result.Slots,
		Status:    string(result.Status),
		Payload:   result.Payload,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
