package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/service"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

type catalogItemRequest struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Barcode     string  `json:"barcode"`
	PriceHourly float64 `json:"priceHourly"`
	PriceDaily  float64 `json:"priceDaily"`
	Notes       string  `json:"notes"`
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req catalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	item := &domain.CatalogItem{
		Kind:        domain.ItemKind(req.Kind),
		Name:        req.Name,
		Barcode:     req.Barcode,
		PriceHourly: req.PriceHourly,
		PriceDaily:  req.PriceDaily,
		Notes:       req.Notes,
	}
	if err := h.catalogSvc.AddItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.catalogSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GetByBarcode serves the keyboard-wedge scanner lookup at the counter.
func (h *CatalogHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	item, err := h.catalogSvc.GetItemByBarcode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req catalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	item, err := h.catalogSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Barcode != "" {
		item.Barcode = req.Barcode
	}
	item.PriceHourly = req.PriceHourly
	item.PriceDaily = req.PriceDaily
	item.Notes = req.Notes

	if err := h.catalogSvc.UpdateItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) Retire(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.RetireItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	items, total, err := h.catalogSvc.ListItems(r.Context(), kind, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
