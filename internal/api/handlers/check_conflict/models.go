package check_conflict

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	checkConflict "github.com/m04kA/SMC-GroundBookingService/internal/usecase/check_conflict"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	Ground           string   `json:"ground"`
	Date             string   `json:"date"` // "2026-09-15"
	Slots            []string `json:"slots"`
	ExcludeBookingID *int64   `json:"excludeBookingId,omitempty"`
}

// ConflictInfo описание найденного конфликта
type ConflictInfo struct {
	Slot      string `json:"slot"`
	Sport     string `json:"sport"`
	BookingID int64  `json:"bookingId"`
}

// FreezeInfo описание найденной блокировки
type FreezeInfo struct {
	Slot  string `json:"slot"`
	Sport string `json:"sport"`
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	Free     bool          `json:"free"`
	Conflict *ConflictInfo `json:"conflict,omitempty"`
	Freeze   *FreezeInfo   `json:"freeze,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictRequest) ToUseCaseRequest() (*checkConflict.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &checkConflict.Request{
		Ground:           r.Ground,
		Date:             date,
		Slots:            r.Slots,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	out := &CheckConflictResponse{Free: resp.IsFree()}

	if resp.Conflict != nil {
		out.Conflict = &ConflictInfo{
			Slot:      resp.Conflict.Slot,
			Sport:     resp.Conflict.Sport,
			BookingID: resp.Conflict.BookingID,
		}
	}

	if resp.Freeze != nil {
		out.Freeze = &FreezeInfo{
			Slot:  resp.Freeze.Slot,
			Sport: resp.Freeze.Sport,
		}
	}

	return out
}
