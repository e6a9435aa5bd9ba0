package get_frozen_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-GroundBookingService/internal/usecase/get_day_schedule"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры запроса"
)

type Handler struct {
	useCase DayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase DayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{ground}/frozen-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ground := vars["ground"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /grounds/{ground}/frozen-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /grounds/{ground}/frozen-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	frozen, err := h.useCase.ListFrozenSlots(r.Context(), ground, date)
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /grounds/{ground}/frozen-slots - Invalid input: ground=%s, error=%v", ground, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /grounds/{ground}/frozen-slots - Failed to get frozen slots: ground=%s, error=%v",
				ground, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromDomainFrozenSlots(ground, dateStr, frozen)

	h.logger.Info("GET /grounds/{ground}/frozen-slots - Retrieved successfully: ground=%s, date=%s, slots_count=%d",
		ground, dateStr, len(frozen))
	handlers.RespondJSON(w, http.StatusOK, response)
}
