package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований.
// Создаёт бронирования только координатор резервирования; здесь - переходы
// confirmed -> cancelled/completed. Оба перехода освобождают строки-держатели
// слотов, поэтому выполняются вместе со сменой статуса в одной транзакции.
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetGroundBookings получает бронирования поля с гибкой фильтрацией:
// по периоду, виду спорта, статусу и включению неактивных бронирований
func (s *Service) GetGroundBookings(ctx context.Context, req *models.GetGroundBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGroundBookings: fetching bookings for ground=%s", req.Ground)

	if !domain.IsValidGround(req.Ground) {
		s.logger.Warn("GetGroundBookings: unknown ground %q", req.Ground)
		return nil, fmt.Errorf("%w: unknown ground", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetGroundBookings: invalid filter for ground=%s: %v", req.Ground, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByGroundWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetGroundBookings: repository error for ground=%s: %v", req.Ground, err)
		return nil, fmt.Errorf("%w: GetGroundBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGroundBookings: successfully fetched %d bookings for ground=%s", len(bookings), req.Ground)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование с указанием причины.
// Смена статуса и освобождение слотов фиксируются атомарно: после отмены
// слоты немедленно доступны детектору конфликтов для новых бронирований.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отмена и освобождение слотов в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			return err
		}
		return s.bookingRepo.ReleaseSlots(txCtx, bookingID)
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования.
// Допустимые переходы: confirmed -> completed, confirmed -> cancelled.
// Уход из confirmed освобождает слоты бронирования.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	switch newStatus {
	case domain.StatusCompleted:
		if !booking.CanBeCompleted() {
			s.logger.Warn("UpdateStatus: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
			return ErrCannotComplete
		}
	case domain.StatusCancelled:
		if !booking.CanBeCancelled() {
			s.logger.Warn("UpdateStatus: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}
	default:
		s.logger.Warn("UpdateStatus: transition to status=%s is not allowed for booking id=%d", newStatus, bookingID)
		return ErrInvalidStatus
	}

	// Смена статуса и освобождение слотов в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			return err
		}
		return s.bookingRepo.ReleaseSlots(txCtx, bookingID)
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}
