package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	reserveSlots "github.com/m04kA/SMC-GroundBookingService/internal/usecase/reserve_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgSlotConflict       = "слот уже занят: поле занято целиком независимо от вида спорта"
	msgSlotFrozen         = "слот заблокирован администратором"
	msgSlotJustTaken      = "слот только что заняли, обновите расписание и повторите запрос"
)

type Handler struct {
	useCase ReserveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		var conflictErr *reserveSlots.ConflictError
		var frozenErr *reserveSlots.FrozenError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Slot conflict: ground=%s, slot=%s, held by sport=%s, booking_id=%d",
				req.Ground, conflictErr.Slot, conflictErr.Sport, conflictErr.BookingID)
			handlers.RespondErrorDetails(w, http.StatusConflict, ConflictResponse{
				Message:   msgSlotConflict,
				Slot:      conflictErr.Slot,
				Sport:     conflictErr.Sport,
				BookingID: conflictErr.BookingID,
			})

		case errors.As(err, &frozenErr):
			h.logger.Warn("POST /bookings - Slot frozen: ground=%s, slot=%s, frozen under sport=%s",
				req.Ground, frozenErr.Slot, frozenErr.Sport)
			handlers.RespondErrorDetails(w, http.StatusForbidden, FrozenResponse{
				Message: msgSlotFrozen,
				Slot:    frozenErr.Slot,
				Sport:   frozenErr.Sport,
			})

		case errors.Is(err, reserveSlots.ErrSlotJustTaken):
			h.logger.Warn("POST /bookings - Slot just taken by concurrent request: ground=%s, sport=%s",
				req.Ground, req.Sport)
			handlers.RespondError(w, http.StatusConflict, msgSlotJustTaken)

		case errors.Is(err, reserveSlots.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: ground=%s, date=%s", req.Ground, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, reserveSlots.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: ground=%s, sport=%s, error=%v",
				req.Ground, req.Sport, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: ground=%s, sport=%s, error=%v",
				req.Ground, req.Sport, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, ground=%s, sport=%s, slots=%s",
		result.ID, result.Ground, result.Sport, result.Slots)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
