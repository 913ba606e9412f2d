package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentmart-backend/internal/service"
)

// DeliveryHandler exposes the delivery leg operations over HTTP
type DeliveryHandler struct {
	deliveries service.DeliveryService
}

func NewDeliveryHandler(deliveries service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	delivery, err := h.deliveries.GetDelivery(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	deliveries, err := h.deliveries.ListDeliveries(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliveries": deliveries})
}

func (h *DeliveryHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "order_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	deliveries, err := h.deliveries.ListDeliveriesByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliveries": deliveries})
}

type rateDeliveryRequest struct {
	Ratings int `json:"ratings"`
}

func (h *DeliveryHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req rateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	delivery, err := h.deliveries.RateDelivery(r.Context(), id, req.Ratings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

// RegisterDeliveryRoutes mounts the delivery endpoints
func RegisterDeliveryRoutes(router *mux.Router, deliveries service.DeliveryService) {
	h := NewDeliveryHandler(deliveries)
	router.HandleFunc("/api/v1/deliveries", h.List).Methods("GET")
	router.HandleFunc("/api/v1/deliveries/order/{order_id}", h.ListByOrder).Methods("GET")
	router.HandleFunc("/api/v1/deliveries/{id}", h.Get).Methods("GET")
	router.HandleFunc("/api/v1/deliveries/{id}/rating", h.Rate).Methods("PATCH")
}
