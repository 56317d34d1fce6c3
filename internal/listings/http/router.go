package http

import (
	"net/http"
	"strings"

	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/listings/provider"
)

type Handler struct {
	provider *provider.Client
	log      *logger.Logger
}

// NewHandler serves GET /listings, the two-hop proxy to the booking
// provider. The endpoint is public.
func NewHandler(client *provider.Client, log *logger.Logger) http.Handler {
	h := &Handler{provider: client, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/listings", commonhttp.RequireMethod(http.MethodGet)(h.search))
	return mux
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := provider.SearchQuery{
		City:     strings.TrimSpace(q.Get("city")),
		CheckIn:  strings.TrimSpace(q.Get("check_in")),
		CheckOut: strings.TrimSpace(q.Get("check_out")),
		Page:     strings.TrimSpace(q.Get("page")),
	}

	// Parameter validation happens before any outbound call.
	if query.City == "" || query.CheckIn == "" || query.CheckOut == "" {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingSearchParams, h.log)
		return
	}

	token, err := h.provider.FetchToken(r.Context())
	if err != nil {
		h.failUpstream(w, r, "provider_auth_failed", err)
		return
	}

	result, err := h.provider.Search(r.Context(), token, query)
	if err != nil {
		h.failUpstream(w, r, "provider_search_failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Status)
	_, _ = w.Write(result.Body)
}

// failUpstream logs the real cause server-side and answers with the generic
// upstream failure so provider detail never reaches the caller.
func (h *Handler) failUpstream(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.log.WithFields(r.Context(), logger.Fields{
		"action": action,
	}).Errorf("listings proxy failed: %v", err)
	commonhttp.HandleError(w, r, commonerrors.ErrProviderUnavailable, h.log)
}
