package get_frozen_slots

import (
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// FrozenSlotEntry заблокированный слот с видом спорта, под которым
// блокировка была установлена
type FrozenSlotEntry struct {
	Slot  string `json:"slot"`
	Sport string `json:"sport"`
}

// FrozenSlotsResponse HTTP response model
type FrozenSlotsResponse struct {
	Ground string            `json:"ground"`
	Date   string            `json:"date"`
	Slots  []FrozenSlotEntry `json:"slots"`
}

// FromDomainFrozenSlots конвертирует domain модели в HTTP response
func FromDomainFrozenSlots(ground, date string, frozen []domain.FrozenSlotEntry) *FrozenSlotsResponse {
	resp := &FrozenSlotsResponse{
		Ground: ground,
		Date:   date,
		Slots:  make([]FrozenSlotEntry, 0, len(frozen)),
	}

	for _, f := range frozen {
		resp.Slots = append(resp.Slots, FrozenSlotEntry{
			Slot:  f.Slot,
			Sport: f.Sport,
		})
	}

	return resp
}
