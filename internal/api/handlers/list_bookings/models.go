package list_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from/to принимают дату (YYYY-MM-DD, в поясе площадки) или RFC3339; to для даты включительно.
func ToServiceRequest(query url.Values, loc *time.Location) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("userId"); v != "" {
		req.UserID = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("resourceId"); v != "" {
		req.ResourceID = &v
	}
	if v := query.Get("resourceKind"); v != "" {
		req.ResourceKind = &v
	}

	if v := query.Get("from"); v != "" {
		from, _, err := parseBound(v, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, isDate, err := parseBound(v, loc)
		if err != nil {
			return nil, err
		}
		if isDate {
			to = to.AddDate(0, 0, 1)
		}
		req.To = &to
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}

func parseBound(v string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(domain.DateFormat, v, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, false, err
}
