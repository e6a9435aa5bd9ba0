package reserve_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotConflict возвращается, когда слот уже удержан подтверждённым
	// бронированием - в том числе другого вида спорта
	ErrSlotConflict = errors.New("reserve_slots: slot is already booked")

	// ErrSlotFrozen возвращается, когда слот административно заблокирован
	ErrSlotFrozen = errors.New("reserve_slots: slot is frozen")

	// ErrSlotJustTaken возвращается, когда слот заняли между проверкой и
	// вставкой: нарушение уникального ограничения или срыв сериализации.
	// В отличие от ErrSlotConflict повтор запроса по свежему расписанию
	// имеет смысл.
	ErrSlotJustTaken = errors.New("reserve_slots: slot was just taken by a concurrent request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slots: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("reserve_slots: invalid booking date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slots: internal error")
)

// ConflictError конфликт с существующим бронированием: какой слот, какой вид
// спорта его удерживает и каким бронированием. errors.Is с ErrSlotConflict
// работает через Unwrap.
type ConflictError struct {
	Slot      string
	Sport     string
	BookingID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: slot %s is held by %s (booking id=%d)", ErrSlotConflict, e.Slot, e.Sport, e.BookingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}

// FrozenError административная блокировка: какой слот и под каким видом
// спорта он был заблокирован. Блокировка действует на все виды спорта.
type FrozenError struct {
	Slot  string
	Sport string
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("%v: slot %s is frozen under %s", ErrSlotFrozen, e.Slot, e.Sport)
}

func (e *FrozenError) Unwrap() error {
	return ErrSlotFrozen
}
