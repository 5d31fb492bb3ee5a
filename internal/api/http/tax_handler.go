package http

import (
	"encoding/json"
	"net/http"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/service"
)

type TaxHandler struct {
	taxSvc service.TaxService
}

func NewTaxHandler(taxSvc service.TaxService) *TaxHandler {
	return &TaxHandler{taxSvc: taxSvc}
}

// GetProfile returns the acting user's own tax profile.
func (h *TaxHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.taxSvc.GetProfile(r.Context(), ActorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetBillingProfile returns the profile billing actually uses for this
// actor, after owner-profile resolution for delegated roles.
func (h *TaxHandler) GetBillingProfile(w http.ResponseWriter, r *http.Request) {
	p := h.taxSvc.ResolveProfile(r.Context(), ActorID(r.Context()))
	if p == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"tax_enabled": false})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *TaxHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.TaxProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	p.UserID = ActorID(r.Context())
	if err := h.taxSvc.SaveProfile(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
