package get_day_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// UseCase use case расписания дня: какие слоты поля заняты или заблокированы,
// с указанием вида спорта, который их удерживает. Только для отображения:
// read-only чтение, согласованность с координатором - eventual.
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

// ListBookedSlots разворачивает составные наборы слотов подтверждённых и
// завершённых бронирований в плоский список (слот, вид спорта, бронирование).
// Повреждённая составная строка даёт для своей записи ноль слотов и не
// мешает разобрать остальные.
func (uc *UseCase) ListBookedSlots(ctx context.Context, ground string, date time.Time) ([]domain.BookedSlot, error) {
	uc.logger.Info("GetDaySchedule: booked slots for ground=%s, date=%s", ground, date.Format(domain.DateFormat))

	if err := validateInput(ground, date); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	var bookings []*domain.Booking
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = uc.bookingRepo.GetReportable(ctx, ground, date)
		return err
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	booked := make([]domain.BookedSlot, 0)
	for _, b := range bookings {
		for _, slot := range domain.SplitSlotSet(b.Slots) {
			booked = append(booked, domain.BookedSlot{
				Slot:      slot,
				Sport:     b.Sport,
				BookingID: b.ID,
			})
		}
	}

	uc.logger.Info("GetDaySchedule: %d booked slots on ground=%s, date=%s",
		len(booked), ground, date.Format(domain.DateFormat))
	return booked, nil
}

// ListFrozenSlots возвращает активные административные блокировки поля на
// дату в виде плоского списка (слот, вид спорта)
func (uc *UseCase) ListFrozenSlots(ctx context.Context, ground string, date time.Time) ([]domain.FrozenSlotEntry, error) {
	uc.logger.Info("GetDaySchedule: frozen slots for ground=%s, date=%s", ground, date.Format(domain.DateFormat))

	if err := validateInput(ground, date); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	var frozenSlots []*domain.FrozenSlot
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		frozenSlots, err = uc.frozenRepo.ListActive(ctx, ground, date)
		return err
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get frozen slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get frozen slots: %v", ErrInternal, err)
	}

	frozen := make([]domain.FrozenSlotEntry, 0, len(frozenSlots))
	for _, f := range frozenSlots {
		frozen = append(frozen, domain.FrozenSlotEntry{
			Slot:  f.Slot,
			Sport: f.Sport,
		})
	}

	uc.logger.Info("GetDaySchedule: %d frozen slots on ground=%s, date=%s",
		len(frozen), ground, date.Format(domain.DateFormat))
	return frozen, nil
}

// validateInput валидирует параметры запроса расписания
func validateInput(ground string, date time.Time) error {
	if !domain.IsValidGround(ground) {
		return fmt.Errorf("%w: unknown ground %q", ErrInvalidInput, ground)
	}

	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
