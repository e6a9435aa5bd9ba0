package frozenslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	frozenRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/frozenslot"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots/models"
)

// Service административный контур блокировок слотов.
// Блокировка записывается под видом спорта, которым управлял администратор,
// но действует на все виды спорта этого поля и даты. Ядро резервирования
// эти записи только читает.
type Service struct {
	frozenRepo FrozenSlotRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(frozenRepo FrozenSlotRepository, logger Logger) *Service {
	return &Service{
		frozenRepo: frozenRepo,
		logger:     logger,
	}
}

// Freeze блокирует слот.
// Повторная активная блокировка того же слота отклоняется хранилищем.
func (s *Service) Freeze(ctx context.Context, req *models.FreezeSlotRequest) (*models.FrozenSlotResponse, error) {
	s.logger.Info("Freeze: ground=%s, date=%s, sport=%s, slot=%s, by=%d",
		req.Ground, req.Date.Format(domain.DateFormat), req.Sport, req.Slot, req.FrozenBy)

	if err := validateFreezeRequest(req); err != nil {
		s.logger.Warn("Freeze: validation failed: %v", err)
		return nil, err
	}

	frozen := &domain.FrozenSlot{
		Ground:     req.Ground,
		FreezeDate: req.Date,
		Sport:      req.Sport,
		Slot:       req.Slot,
		FrozenBy:   req.FrozenBy,
	}

	created, err := s.frozenRepo.Create(ctx, frozen)
	if err != nil {
		if errors.Is(err, frozenRepo.ErrAlreadyFrozen) {
			s.logger.Warn("Freeze: slot %s is already frozen on ground=%s, date=%s",
				req.Slot, req.Ground, req.Date.Format(domain.DateFormat))
			return nil, ErrAlreadyFrozen
		}
		s.logger.Error("Freeze: repository error: %v", err)
		return nil, fmt.Errorf("%w: Freeze - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Freeze: successfully frozen slot %s, id=%d", created.Slot, created.ID)
	return models.FromDomainFrozenSlot(created), nil
}

// Unfreeze снимает блокировку слота
func (s *Service) Unfreeze(ctx context.Context, id int64) error {
	s.logger.Info("Unfreeze: deactivating frozen slot id=%d", id)

	if err := s.frozenRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, frozenRepo.ErrFrozenSlotNotFound) {
			s.logger.Warn("Unfreeze: frozen slot id=%d not found", id)
			return ErrFrozenSlotNotFound
		}
		s.logger.Error("Unfreeze: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Unfreeze - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unfreeze: successfully deactivated frozen slot id=%d", id)
	return nil
}

// ListActive получает активные блокировки поля на дату
func (s *Service) ListActive(ctx context.Context, ground string, date time.Time) (*models.FrozenSlotListResponse, error) {
	s.logger.Info("ListActive: ground=%s, date=%s", ground, date.Format(domain.DateFormat))

	if !domain.IsValidGround(ground) {
		s.logger.Warn("ListActive: unknown ground %q", ground)
		return nil, fmt.Errorf("%w: unknown ground", ErrInvalidInput)
	}

	frozenSlots, err := s.frozenRepo.ListActive(ctx, ground, date)
	if err != nil {
		s.logger.Error("ListActive: repository error for ground=%s: %v", ground, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFrozenSlotList(frozenSlots), nil
}

// validateFreezeRequest валидирует запрос блокировки
func validateFreezeRequest(req *models.FreezeSlotRequest) error {
	if !domain.IsValidGround(req.Ground) {
		return fmt.Errorf("%w: unknown ground %q", ErrInvalidInput, req.Ground)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}

	if !domain.ValidateSlotID(req.Slot) {
		return fmt.Errorf("%w: malformed slot identifier %q", ErrInvalidInput, req.Slot)
	}

	if req.FrozenBy <= 0 {
		return fmt.Errorf("%w: frozenBy must be positive", ErrInvalidInput)
	}

	return nil
}
