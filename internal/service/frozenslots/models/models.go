package models

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// FreezeSlotRequest запрос на административную блокировку слота
type FreezeSlotRequest struct {
	Ground   string    `json:"ground"`
	Date     time.Time `json:"date"`
	Sport    string    `json:"sport"`
	Slot     string    `json:"slot"`
	FrozenBy int64     `json:"frozenBy"`
}

// FrozenSlotResponse ответ с данными блокировки
type FrozenSlotResponse struct {
	ID         int64  `json:"id"`
	Ground     string `json:"ground"`
	FreezeDate string `json:"freezeDate"` // "2024-01-01"
	Sport      string `json:"sport"`
	Slot       string `json:"slot"`
	Active     bool   `json:"active"`
	FrozenBy   int64  `json:"frozenBy"`

	DeactivatedAt *string   `json:"deactivatedAt,omitempty"` // ISO 8601 format
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FrozenSlotListResponse ответ со списком блокировок
type FrozenSlotListResponse struct {
	FrozenSlots []FrozenSlotResponse `json:"frozenSlots"`
}

// FromDomainFrozenSlot конвертирует domain модель в DTO
func FromDomainFrozenSlot(f *domain.FrozenSlot) *FrozenSlotResponse {
	if f == nil {
		return nil
	}

	resp := &FrozenSlotResponse{
		ID:         f.ID,
		Ground:     f.Ground,
		FreezeDate: f.FreezeDate.Format(domain.DateFormat),
		Sport:      f.Sport,
		Slot:       f.Slot,
		Active:     f.Active,
		FrozenBy:   f.FrozenBy,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}

	if f.DeactivatedAt != nil {
		deactivatedStr := f.DeactivatedAt.Format(time.RFC3339)
		resp.DeactivatedAt = &deactivatedStr
	}

	return resp
}

// FromDomainFrozenSlotList конвертирует список domain моделей в DTO
func FromDomainFrozenSlotList(frozenSlots []*domain.FrozenSlot) *FrozenSlotListResponse {
	resp := &FrozenSlotListResponse{
		FrozenSlots: make([]FrozenSlotResponse, 0, len(frozenSlots)),
	}

	for _, f := range frozenSlots {
		if fr := FromDomainFrozenSlot(f); fr != nil {
			resp.FrozenSlots = append(resp.FrozenSlots, *fr)
		}
	}

	return resp
}
