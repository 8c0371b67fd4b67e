package feed

import (
	"net/http"
	"strconv"

	"ai-rss-hub/internal/handler/http/respond"
	feedUC "ai-rss-hub/internal/usecase/feed"
)

// ListHandler handles GET /api/feeds requests.
// The active_only query parameter restricts the listing to active feeds.
type ListHandler struct {
	Svc *feedUC.Service
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active_only"))

	feeds, err := h.Svc.List(r.Context(), activeOnly)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(feeds))
	for _, f := range feeds {
		dtos = append(dtos, toDTO(f))
	}
	respond.JSON(w, http.StatusOK, dtos)
}
