package check_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	checkConflict "github.com/m04kA/SMC-GroundBookingService/internal/usecase/check_conflict"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры проверки"
)

type Handler struct {
	useCase CheckConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/check
// Проверка без резервирования: результат носит информационный характер,
// слот может быть занят сразу после ответа.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/check - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflict.ErrInvalidInput):
			h.logger.Warn("POST /bookings/check - Invalid input: ground=%s, error=%v", req.Ground, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/check - Failed to check conflicts: ground=%s, error=%v", req.Ground, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/check - Check completed: ground=%s, date=%s, free=%t",
		req.Ground, req.Date, response.Free)
	handlers.RespondJSON(w, http.StatusOK, response)
}
