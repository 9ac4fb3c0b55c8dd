package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"

	"github.com/gorilla/mux"
)

type ItemHandler struct {
	catalog     service.CatalogService
	circulation service.CirculationService
	query       service.QueryService
}

func NewItemHandler(catalog service.CatalogService, circulation service.CirculationService, query service.QueryService) *ItemHandler {
	return &ItemHandler{
		catalog:     catalog,
		circulation: circulation,
		query:       query,
	}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ItemStatus(strings.ToUpper(r.URL.Query().Get("status")))
	items, err := h.catalog.ListItems(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ListAvailable backs the "available items to loan" picker.
func (h *ItemHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.query.ListAvailableItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.catalog.AddItem(r.Context(), req.Title, req.Author)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := checkRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.catalog.UpdateItem(r.Context(), id, req.Title, req.Author)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.catalog.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "deleted": "true"})
}

// Repair resets an item whose cached availability disagrees with the
// ledger. Exposed for librarians cleaning up legacy data.
func (h *ItemHandler) Repair(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	repaired, err := h.circulation.RepairItemAvailability(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "repaired": repaired})
}
