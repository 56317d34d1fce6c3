package http

import (
	"net/http"
	"strings"

	"github.com/rakhimovb/staylist/internal/city/domain"
	"github.com/rakhimovb/staylist/internal/city/repository"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	"github.com/rakhimovb/staylist/internal/common/logger"
)

type Handler struct {
	repo repository.Repository
	log  *logger.Logger
}

// NewHandler serves GET /cities?q=. The endpoint is public and read-only.
func NewHandler(repo repository.Repository, log *logger.Logger) http.Handler {
	h := &Handler{repo: repo, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/cities", commonhttp.RequireMethod(http.MethodGet)(h.search))
	return mux
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		commonhttp.WriteJSON(w, http.StatusOK, []domain.City{})
		return
	}

	cities, err := h.repo.SearchByPrefix(r.Context(), sanitizePrefix(query))
	if err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "city_search_failed",
		}).Errorf("city search failed: %v", err)
		commonhttp.HandleError(w, r, commonerrors.ErrInternalError.WithCause(err), h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, cities)
}

// sanitizePrefix strips the LIKE wildcards so user input always matches
// literally.
func sanitizePrefix(q string) string {
	q = strings.ReplaceAll(q, "%", "")
	return strings.ReplaceAll(q, "_", "")
}
