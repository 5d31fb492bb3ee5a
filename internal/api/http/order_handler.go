package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/draft"
	"glanz-rental-backend/internal/reconcile"
	"glanz-rental-backend/internal/service"
)

type OrderHandler struct {
	orderSvc  service.OrderService
	returnSvc service.ReturnService
}

func NewOrderHandler(orderSvc service.OrderService, returnSvc service.ReturnService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, returnSvc: returnSvc}
}

type orderPayload struct {
	CustomerID    int64         `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	InvoiceNo     string        `json:"invoice_no"`
	DepositCents  int64         `json:"deposit_cents"`
	Items         []itemPayload `json:"items"`
}

type itemPayload struct {
	ID               int64  `json:"id"`
	PhotoURL         string `json:"photo_url"`
	ProductName      string `json:"product_name"`
	Quantity         int32  `json:"quantity"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	LineTotalCents   int64  `json:"line_total_cents"`
}

// applyPayload replays the payload onto the draft as the explicit aggregate
// operations. Items are added in reverse so that the draft's newest-first
// ordering ends up matching the payload order.
func applyPayload(d *draft.Draft, p *orderPayload) {
	d.SetCustomer(p.CustomerID, p.CustomerName, p.CustomerPhone)
	if p.StartDate != "" {
		d.SetStartDate(p.StartDate)
	}
	if p.EndDate != "" {
		d.SetEndDate(p.EndDate)
	}
	d.SetInvoiceNo(p.InvoiceNo)
	d.SetDeposit(p.DepositCents)
	for i := len(p.Items) - 1; i >= 0; i-- {
		ip := p.Items[i]
		d.AddItem(domain.LineItem{
			ID:               ip.ID,
			PhotoURL:         ip.PhotoURL,
			ProductName:      ip.ProductName,
			Quantity:         ip.Quantity,
			PricePerDayCents: ip.PricePerDayCents,
			LineTotalCents:   ip.LineTotalCents,
		})
	}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	d := draft.New()
	applyPayload(d, &payload)

	order, err := h.orderSvc.SubmitDraft(r.Context(), ActorID(r.Context()), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	// Load the existing order into a fresh draft (binding the draft to the
	// order id), then replace its contents with the edited payload.
	d := draft.New()
	if _, err := h.orderSvc.LoadForEdit(r.Context(), orderID, d); err != nil {
		writeError(w, err)
		return
	}
	for len(d.Items()) > 0 {
		d.RemoveItem(0)
	}
	applyPayload(d, &payload)

	order, err := h.orderSvc.SubmitDraft(r.Context(), ActorID(r.Context()), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	if cidStr := r.URL.Query().Get("customer_id"); cidStr != "" {
		cid, err := strconv.ParseInt(cidStr, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
			return
		}
		orders, total, err := h.orderSvc.ListCustomerOrders(r.Context(), cid, page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Items: orders, Total: total})
		return
	}

	orders, total, err := h.orderSvc.ListOrders(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: orders, Total: total})
}

type returnPayload struct {
	LateFeeCents int64             `json:"late_fee_cents"`
	Decisions    []decisionPayload `json:"decisions"`
}

type decisionPayload struct {
	ItemID            int64  `json:"item_id"`
	Selected          bool   `json:"selected"`
	Missing           bool   `json:"missing"`
	MissingNote       string `json:"missing_note"`
	ReturnQuantity    *int32 `json:"return_quantity,omitempty"`
	DamageCostCents   *int64 `json:"damage_cost_cents,omitempty"`
	DamageDescription string `json:"damage_description"`
}

type returnResponse struct {
	*service.ReturnResult
	Warning string `json:"warning,omitempty"`
}

// SubmitReturn drives the two-batch return protocol. A deferred-batch
// failure still answers 200: the first batch is committed and the warning
// tells the operator what needs manual follow-up.
func (h *OrderHandler) SubmitReturn(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	var payload returnPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	decisions := make(map[int64]reconcile.Decision, len(payload.Decisions))
	for _, dp := range payload.Decisions {
		decisions[dp.ItemID] = reconcile.Decision{
			Selected:          dp.Selected,
			Missing:           dp.Missing,
			MissingNote:       dp.MissingNote,
			ReturnQuantity:    dp.ReturnQuantity,
			DamageCostCents:   dp.DamageCostCents,
			DamageDescription: dp.DamageDescription,
		}
	}

	result, err := h.returnSvc.SubmitReturn(r.Context(), ActorID(r.Context()), orderID, decisions, payload.LateFeeCents)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := returnResponse{ReturnResult: result}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
