package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"
)

// PartnerHandler exposes the delivery partner operations over HTTP
type PartnerHandler struct {
	partners service.DeliveryPartnerService
}

func NewPartnerHandler(partners service.DeliveryPartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var partner domain.DeliveryPartner
	if err := json.NewDecoder(r.Body).Decode(&partner); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := h.partners.CreatePartner(r.Context(), &partner); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	partner, err := h.partners.GetPartner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.ListPartners(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"delivery_partners": partners})
}

func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var partner domain.DeliveryPartner
	if err := json.NewDecoder(r.Body).Decode(&partner); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	partner.ID = id
	if err := h.partners.UpdatePartner(r.Context(), &partner); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.partners.DeletePartner(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RegisterPartnerRoutes mounts the delivery partner endpoints
func RegisterPartnerRoutes(router *mux.Router, partners service.DeliveryPartnerService) {
	h := NewPartnerHandler(partners)
	router.HandleFunc("/api/v1/delivery-partners", h.Create).Methods("POST")
	router.HandleFunc("/api/v1/delivery-partners", h.List).Methods("GET")
	router.HandleFunc("/api/v1/delivery-partners/{id}", h.Get).Methods("GET")
	router.HandleFunc("/api/v1/delivery-partners/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/api/v1/delivery-partners/{id}", h.Delete).Methods("DELETE")
}
