package get_ground_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров.
// Все фильтры опциональны: startDate, endDate, sport, status, includeInactive.
func ToServiceRequest(ground string, query url.Values) (*models.GetGroundBookingsRequest, error) {
	req := &models.GetGroundBookingsRequest{
		Ground: ground,
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("sport"); v != "" {
		req.Sport = &v
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
