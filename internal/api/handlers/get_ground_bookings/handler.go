package get_ground_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{ground}/bookings
// Query params: startDate, endDate, sport, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ground := vars["ground"]

	serviceReq, err := ToServiceRequest(ground, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /grounds/{ground}/bookings - Invalid filter params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetGroundBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /grounds/{ground}/bookings - Invalid input: ground=%s, error=%v", ground, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /grounds/{ground}/bookings - Failed to get bookings: ground=%s, error=%v",
				ground, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /grounds/{ground}/bookings - Retrieved successfully: ground=%s, bookings_count=%d",
		ground, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
