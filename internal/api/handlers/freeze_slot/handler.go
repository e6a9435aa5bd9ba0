package freeze_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры блокировки"
	msgUnauthorized       = "требуется аутентификация"
	msgAlreadyFrozen      = "слот уже заблокирован"
)

type Handler struct {
	service FrozenSlotService
	logger  Logger
}

func NewHandler(service FrozenSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/frozen-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /frozen-slots - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req FreezeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /frozen-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /frozen-slots - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Freeze(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, frozenslots.ErrAlreadyFrozen):
			h.logger.Warn("POST /frozen-slots - Slot already frozen: ground=%s, date=%s, slot=%s",
				req.Ground, req.Date, req.Slot)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFrozen)

		case errors.Is(err, frozenslots.ErrInvalidInput):
			h.logger.Warn("POST /frozen-slots - Invalid input: ground=%s, slot=%s, error=%v",
				req.Ground, req.Slot, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /frozen-slots - Failed to freeze slot: ground=%s, slot=%s, error=%v",
				req.Ground, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /frozen-slots - Slot frozen successfully: id=%d, ground=%s, slot=%s, user_id=%d",
		result.ID, result.Ground, result.Slot, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
