package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"
)

// OrderHandler exposes the order lifecycle operations over HTTP
type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	UserID           uuid.UUID          `json:"user_id"`
	ProductID        uuid.UUID          `json:"product_id"`
	Quantity         int                `json:"quantity"`
	Rate             string             `json:"rate"`
	RentStartDate    time.Time          `json:"rent_start_date"`
	RentEndDate      time.Time          `json:"rent_end_date"`
	DeliveryLocation domain.Address     `json:"delivery_location"`
	PickupLocation   domain.Address     `json:"pickup_location"`
	DeliveryDate     time.Time          `json:"delivery_date"`
	PickupDate       time.Time          `json:"pickup_date"`
	OrderStatus      domain.OrderStatus `json:"order_status"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	rate, err := domain.ParseRentalUnit(req.Rate)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		UserID:           req.UserID,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
		Rate:             rate,
		RentStartDate:    req.RentStartDate,
		RentEndDate:      req.RentEndDate,
		DeliveryLocation: req.DeliveryLocation,
		PickupLocation:   req.PickupLocation,
		DeliveryDate:     req.DeliveryDate,
		PickupDate:       req.PickupDate,
		OrderStatus:      req.OrderStatus,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	orders, err := h.orders.ListOrders(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "user_id", h.orders.ListOrdersByUser)
}

func (h *OrderHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "product_id", h.orders.ListOrdersByProduct)
}

func (h *OrderHandler) ListByShopOwner(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "owner_id", h.orders.ListOrdersByShopOwner)
}

func (h *OrderHandler) listByID(w http.ResponseWriter, r *http.Request, name string,
	op func(ctx context.Context, id uuid.UUID, limit, offset int) ([]domain.Order, error)) {
	id, err := pathUUID(r, name)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	limit, offset, err := pageParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	orders, err := op(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(mux.Vars(r)["status"])
	limit, offset, err := pageParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	orders, err := h.orders.ListOrdersByStatus(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type updateOrderStatusRequest struct {
	OrderStatus domain.OrderStatus `json:"order_status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updatePaymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	order, err := h.orders.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type recordPaymentRequest struct {
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	order, err := h.orders.RecordPayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CompletePickup(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	order, err := h.orders.CompletePickup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updatePhotosRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids"`
}

func (h *OrderHandler) UpdateDeliveryPhotos(w http.ResponseWriter, r *http.Request) {
	h.updatePhotos(w, r, h.orders.UpdateDeliveryPhotos)
}

func (h *OrderHandler) UpdatePickupPhotos(w http.ResponseWriter, r *http.Request) {
	h.updatePhotos(w, r, h.orders.UpdatePickupPhotos)
}

func (h *OrderHandler) updatePhotos(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updatePhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	order, err := op(r.Context(), id, req.PhotoIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateRatingsRequest struct {
	Ratings int `json:"ratings"`
}

func (h *OrderHandler) UpdateRatings(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateRatingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	order, err := h.orders.UpdateRatings(r.Context(), id, req.Ratings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	order, err := h.orders.CancelOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RegisterOrderRoutes mounts the order endpoints
func RegisterOrderRoutes(router *mux.Router, orders service.OrderService) {
	h := NewOrderHandler(orders)
	router.HandleFunc("/api/v1/orders", h.Create).Methods("POST")
	router.HandleFunc("/api/v1/orders", h.List).Methods("GET")
	router.HandleFunc("/api/v1/orders/user/{user_id}", h.ListByUser).Methods("GET")
	router.HandleFunc("/api/v1/orders/product/{product_id}", h.ListByProduct).Methods("GET")
	router.HandleFunc("/api/v1/orders/status/{status}", h.ListByStatus).Methods("GET")
	router.HandleFunc("/api/v1/orders/shop-owner/{owner_id}", h.ListByShopOwner).Methods("GET")
	router.HandleFunc("/api/v1/orders/{id}", h.Get).Methods("GET")
	router.HandleFunc("/api/v1/orders/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/api/v1/orders/{id}/status", h.UpdateStatus).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/payment-status", h.UpdatePaymentStatus).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/payment", h.RecordPayment).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/pickup-complete", h.CompletePickup).Methods("POST")
	router.HandleFunc("/api/v1/orders/{id}/delivery-photos", h.UpdateDeliveryPhotos).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/pickup-photos", h.UpdatePickupPhotos).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/ratings", h.UpdateRatings).Methods("PATCH")
	router.HandleFunc("/api/v1/orders/{id}/cancel", h.Cancel).Methods("POST")
}
