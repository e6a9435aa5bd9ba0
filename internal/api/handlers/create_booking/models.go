package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	reserveSlots "github.com/m04kA/SMC-GroundBookingService/internal/usecase/reserve_slots"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Ground  string          `json:"ground"`            // "competitive" | "practice"
	Date    string          `json:"date"`              // "2026-09-15"
	Sport   string          `json:"sport"`             // "cricket", "football", ...
	Slots   []string        `json:"slots"`             // ["06:00-07:00", "07:00-08:00"]
	Payload json.RawMessage `json:"payload,omitempty"` // непрозрачные данные клиента
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64           `json:"id"`
	Ground    string          `json:"ground"`
	Date      string          `json:"date"`
	Sport     string          `json:"sport"`
	Slots     []string        `json:"slots"`
	Status    string          `json:"status"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// ConflictResponse тело 409 ответа при конфликте: слот удержан другим
// бронированием, возможно другого вида спорта на том же поле
type ConflictResponse struct {
	Message   string `json:"message"`
	Slot      string `json:"slot"`
	Sport     string `json:"sport"`
	BookingID int64  `json:"bookingId"`
}

// FrozenResponse тело 403 ответа при административной блокировке слота
type FrozenResponse struct {
	Message string `json:"message"`
	Slot    string `json:"slot"`
	Sport   string `json:"sport"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*reserveSlots.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &reserveSlots.Request{
		Ground:  r.Ground,
		Date:    bookingDate,
		Sport:   r.Sport,
		Slots:   r.Slots,
		Payload: r.Payload,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlots.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Ground:    resp.Ground,
		Date:      resp.Date.Format(domain.DateFormat),
		Sport:     resp.Sport,
		Slots:     domain.SplitSlotSet(resp.Slots),
		Status:    resp.Status,
		Payload:   resp.Payload,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
