package check_conflict

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// UseCase use case проверки доступности слотов без записи.
// Используется сценариями обновления/переноса бронирования: собственное
// бронирование исключается из поиска через ExcludeBookingID.
type UseCase struct {
	bookingRepo BookingRepository
	frozenRepo  FrozenSlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	frozenRepo FrozenSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		frozenRepo:  frozenRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case проверки конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflict: ground=%s, date=%s, slots=%v",
		req.Ground, req.Date.Format(domain.DateFormat), req.Slots)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// Обе проверки в одной read-only транзакции: видят один снимок данных
	var response Response
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		conflict, err := uc.bookingRepo.FindSlotConflict(ctx, req.Ground, req.Date, req.Slots, req.ExcludeBookingID)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		freeze, err := uc.frozenRepo.FindActive(ctx, req.Ground, req.Date, req.Slots)
		if err != nil {
			return fmt.Errorf("%w: frozen check failed: %v", ErrInternal, err)
		}

		response.Conflict = conflict
		response.Freeze = freeze
		return nil
	})
	if err != nil {
		uc.logger.Error("CheckConflict: read failed: %v", err)
		return nil, err
	}

	return &response, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidGround(req.Ground) {
		return fmt.Errorf("%w: unknown ground %q", ErrInvalidInput, req.Ground)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	for _, slot := range req.Slots {
		if !domain.ValidateSlotID(slot) {
			return fmt.Errorf("%w: malformed slot identifier %q", ErrInvalidInput, slot)
		}
	}

	return nil
}
