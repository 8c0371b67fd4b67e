package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/handler/http/respond"
	feedUC "ai-rss-hub/internal/usecase/feed"
)

// CreateHandler handles POST /api/feeds requests.
type CreateHandler struct {
	Svc *feedUC.Service
}

type createRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), feedUC.CreateInput{
		Name:     req.Name,
		URL:      req.URL,
		Category: req.Category,
	})
	if err != nil {
		var verr *entity.ValidationError
		switch {
		case errors.Is(err, entity.ErrDuplicateURL):
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("feed URL already exists"))
		case errors.As(err, &verr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(created))
}
