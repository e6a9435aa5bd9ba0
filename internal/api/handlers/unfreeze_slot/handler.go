package unfreeze_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots"
)

const (
	msgInvalidFrozenSlotID = "некорректный ID блокировки"
	msgNotFound            = "активная блокировка не найдена"
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

// Handle PATCH /api/v1/frozen-slots/{frozenSlotId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	frozenSlotIDStr := vars["frozenSlotId"]

	frozenSlotID, err := strconv.ParseInt(frozenSlotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /frozen-slots/{id}/deactivate - Invalid frozen slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrozenSlotID)
		return
	}

	err = h.service.Unfreeze(r.Context(), frozenSlotID)
	if err != nil {
		switch {
		case errors.Is(err, frozenslots.ErrFrozenSlotNotFound):
			h.logger.Warn("PATCH /frozen-slots/{id}/deactivate - Frozen slot not found: id=%d", frozenSlotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /frozen-slots/{id}/deactivate - Failed to deactivate: id=%d, error=%v",
				frozenSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /frozen-slots/{id}/deactivate - Deactivated successfully: id=%d", frozenSlotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
