package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"cyclerent-backend/internal/pricing"
	"cyclerent-backend/internal/service"
)

type ContractHandler struct {
	contractSvc service.ContractService
}

func NewContractHandler(contractSvc service.ContractService) *ContractHandler {
	return &ContractHandler{contractSvc: contractSvc}
}

type contractItemRequest struct {
	Barcode   string `json:"barcode"`
	Insurance bool   `json:"insurance"`
}

type createContractRequest struct {
	CustomerName  string                `json:"customerName"`
	CustomerPhone string                `json:"customerPhone"`
	IsReservation bool                  `json:"isReservation"`
	StartAt       *time.Time            `json:"startAt,omitempty"`
	InsuranceFlat float64               `json:"insuranceFlat"`
	Notes         string                `json:"notes"`
	Items         []contractItemRequest `json:"items"`
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.CustomerName == "" {
		writeBadRequest(w, "customerName is required")
		return
	}

	input := service.NewContractInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		IsReservation: req.IsReservation,
		InsuranceFlat: req.InsuranceFlat,
		Notes:         req.Notes,
		Insured:       make(map[string]bool),
	}
	if req.StartAt != nil {
		input.StartAt = *req.StartAt
	}
	for _, it := range req.Items {
		input.Barcodes = append(input.Barcodes, it.Barcode)
		input.Insured[it.Barcode] = it.Insurance
	}

	c, err := h.contractSvc.CreateContract(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.contractSvc.GetContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	contracts, total, err := h.contractSvc.ListContracts(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: contracts, Total: total, Page: page})
}

// Bill returns the live billing breakdown. An optional "at" query parameter
// (RFC 3339) prices the contract as of that instant instead of now.
func (h *ContractHandler) Bill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeBadRequest(w, "invalid at parameter, want RFC 3339")
			return
		}
		at = parsed
	}

	bill, err := h.contractSvc.Bill(r.Context(), id, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *ContractHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req contractItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Barcode == "" {
		writeBadRequest(w, "barcode is required")
		return
	}

	c, err := h.contractSvc.AddItem(r.Context(), id, req.Barcode, req.Insurance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type returnRequest struct {
	Barcodes []string `json:"barcodes"`
}

func (h *ContractHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if len(req.Barcodes) == 0 {
		writeBadRequest(w, "barcodes are required")
		return
	}

	c, err := h.contractSvc.ReturnItems(r.Context(), id, req.Barcodes, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type substituteRequest struct {
	OldBarcode string `json:"oldBarcode"`
	NewBarcode string `json:"newBarcode"`
}

func (h *ContractHandler) Substitute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req substituteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.OldBarcode == "" || req.NewBarcode == "" {
		writeBadRequest(w, "oldBarcode and newBarcode are required")
		return
	}

	c, err := h.contractSvc.SubstituteBike(r.Context(), id, req.OldBarcode, req.NewBarcode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type priceOverrideRequest struct {
	Field string  `json:"field"` // "priceHourly" or "priceDaily"
	Value float64 `json:"value"`
}

func (h *ContractHandler) OverrideItemPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeBadRequest(w, "invalid item index")
		return
	}

	var req priceOverrideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	field := pricing.PriceField(req.Field)
	if field != pricing.PriceFieldHourly && field != pricing.PriceFieldDaily {
		writeBadRequest(w, "field must be priceHourly or priceDaily")
		return
	}

	bill, err := h.contractSvc.OverrideItemPrice(r.Context(), id, index, field, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

type completePaymentRequest struct {
	FinalAmount *float64 `json:"finalAmount,omitempty"`
}

func (h *ContractHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req completePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	c, err := h.contractSvc.CompletePayment(r.Context(), id, req.FinalAmount, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.contractSvc.CancelContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// pathID parses the numeric path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid "+name)
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
