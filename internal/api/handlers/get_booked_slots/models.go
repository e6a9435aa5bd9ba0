package get_booked_slots

import (
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookedSlotEntry занятый слот с указанием вида спорта и бронирования,
// которые его удерживают
type BookedSlotEntry struct {
	Slot      string `json:"slot"`
	Sport     string `json:"sport"`
	BookingID int64  `json:"bookingId"`
}

// BookedSlotsResponse HTTP response model
type BookedSlotsResponse struct {
	Ground string            `json:"ground"`
	Date   string            `json:"date"`
	Slots  []BookedSlotEntry `json:"slots"`
}

// FromDomainBookedSlots конвертирует domain модели в HTTP response
func FromDomainBookedSlots(ground, date string, booked []domain.BookedSlot) *BookedSlotsResponse {
	resp := &BookedSlotsResponse{
		Ground: ground,
		Date:   date,
		Slots:  make([]BookedSlotEntry, 0, len(booked)),
	}

	for _, b := range booked {
		resp.Slots = append(resp.Slots, BookedSlotEntry{
			Slot:      b.Slot,
			Sport:     b.Sport,
			BookingID: b.BookingID,
		})
	}

	return resp
}
