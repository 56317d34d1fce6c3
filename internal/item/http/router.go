package http

import (
	"net/http"
	"strings"
	"time"

	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/common/tokenauth"
	"github.com/rakhimovb/staylist/internal/item/domain"
	"github.com/rakhimovb/staylist/internal/item/service"
)

type itemRequest struct {
	Item struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"item"`
}

type itemPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPayload(item domain.Item) itemPayload {
	return itemPayload{
		ID:          string(item.ID),
		Name:        item.Name,
		Description: item.Description,
		UserID:      string(item.OwnerID),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

type Handler struct {
	items *service.ItemService
	log   *logger.Logger
}

// NewHandler mounts the item CRUD surface behind the token gate. The id
// segment is parsed off the path by hand: /items for the collection,
// /items/{id} for a member.
func NewHandler(items *service.ItemService, gate func(http.Handler) http.Handler, log *logger.Logger) http.Handler {
	h := &Handler{items: items, log: log}

	mux := http.NewServeMux()
	mux.Handle("/items", gate(http.HandlerFunc(h.collection)))
	mux.Handle("/items/", gate(http.HandlerFunc(h.member)))
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) member(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/items/")
	if id == "" || strings.Contains(id, "/") {
		commonhttp.WriteError(w, http.StatusNotFound, "Item not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, domain.ID(id))
	case http.MethodPut:
		h.update(w, r, domain.ID(id))
	case http.MethodDelete:
		h.delete(w, r, domain.ID(id))
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.items.List(r.Context(), user.ID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	payloads := make([]itemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, toPayload(item))
	}
	commonhttp.WriteJSON(w, http.StatusOK, payloads)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id domain.ID) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	item, err := h.items.Get(r.Context(), user.ID, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toPayload(item))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req itemRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create item failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.items.Create(r.Context(), user.ID, service.ItemInput{
		Name:        req.Item.Name,
		Description: req.Item.Description,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, toPayload(item))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id domain.ID) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req itemRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update item failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.items.Update(r.Context(), user.ID, id, service.ItemInput{
		Name:        req.Item.Name,
		Description: req.Item.Description,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toPayload(item))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id domain.ID) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.items.Delete(r.Context(), user.ID, id); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteMessage(w, http.StatusOK, "Item deleted successfully")
}
