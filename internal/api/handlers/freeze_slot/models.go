package freeze_slot

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots/models"
)

// FreezeSlotRequest HTTP request model
type FreezeSlotRequest struct {
	Ground string `json:"ground"` // "competitive" | "practice"
	Date   string `json:"date"`   // "2026-09-15"
	Sport  string `json:"sport"`  // вид спорта, под которым ставится блокировка
	Slot   string `json:"slot"`   // "06:00-07:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса.
// frozenBy берется из аутентификационного контекста, а не из тела запроса.
func (r *FreezeSlotRequest) ToServiceRequest(frozenBy int64) (*models.FreezeSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.FreezeSlotRequest{
		Ground:   r.Ground,
		Date:     date,
		Sport:    r.Sport,
		Slot:     r.Slot,
		FrozenBy: frozenBy,
	}, nil
}
