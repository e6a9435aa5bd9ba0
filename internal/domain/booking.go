package domain

import (
	"encoding/json"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a ground reservation in the system.
// One booking covers the whole composite slot set on a single ground and date.
// The sport is descriptive metadata only: the ground owns the slots, so a
// confirmed booking blocks its slots for every sport, not just its own.
type Booking struct {
	ID          int64
	Ground      string
	BookingDate time.Time
	Sport       string
	Slots       string // composite slot set, e.g. "06:00-07:00,07:00-08:00"
	Status      BookingStatus

	// Opaque payload owned by external collaborators (customer, price, receipt data)
	Payload json.RawMessage

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlots returns true if the booking holds its slots against other requests
func (b *Booking) BlocksSlots() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can be marked as completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// SlotConflict описывает найденный конфликт: слот уже удержан подтверждённым
// бронированием (возможно, другого вида спорта) на том же поле и дате
type SlotConflict struct {
	Slot      string
	Sport     string
	BookingID int64
}

// SlotFreeze описывает найденную административную блокировку слота
type SlotFreeze struct {
	Slot  string
	Sport string
}

// GroundBookingsFilter фильтр для получения бронирований поля
type GroundBookingsFilter struct {
	Ground          string         // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Sport           *string        // Фильтр по виду спорта (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые бронирования
}
