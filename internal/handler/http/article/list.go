package article

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/handler/http/respond"
	artUC "ai-rss-hub/internal/usecase/article"
)

// ListHandler handles GET /api/articles requests.
//
// Supported query parameters: limit, category, days, date, start_date,
// end_date. Date parameters use the YYYY-MM-DD format. When several date
// filters are present, date wins over start_date/end_date, which win
// over days.
type ListHandler struct {
	Svc *artUC.Service
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := parseListQuery(r.URL.Query())
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.Svc.List(r.Context(), in)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, dtos)
}

func parseListQuery(q url.Values) (artUC.ListInput, error) {
	var in artUC.ListInput

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid limit: %q", v)
		}
		in.Limit = n
	}
	in.Category = q.Get("category")
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid days: %q", v)
		}
		in.Days = n
	}

	var err error
	if in.Date, err = parseDateParam(q.Get("date"), "date"); err != nil {
		return in, err
	}
	if in.StartDate, err = parseDateParam(q.Get("start_date"), "start_date"); err != nil {
		return in, err
	}
	if in.EndDate, err = parseDateParam(q.Get("end_date"), "end_date"); err != nil {
		return in, err
	}

	return in, nil
}

func parseDateParam(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q, expected YYYY-MM-DD", name, value)
	}
	return &t, nil
}
