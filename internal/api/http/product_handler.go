package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
	"rentmart-backend/internal/service"
)

// ProductHandler exposes the product operations over HTTP
type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	for _, u := range product.RentalUnits {
		if _, err := domain.ParseRentalUnit(string(u)); err != nil {
			writeError(w, err)
			return
		}
	}
	if err := h.products.CreateProduct(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repository.ProductFilter
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "Invalid owner_id")
			return
		}
		filter.OwnerID = &id
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "Invalid category_id")
			return
		}
		filter.CategoryID = &id
	}
	products, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	product.ID = id
	if err := h.products.UpdateProduct(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		badRequest(w, "Missing q parameter")
		return
	}
	limit, _, err := pageParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	products, err := h.products.SearchProducts(r.Context(), term, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) Price(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	unit, err := domain.ParseRentalUnit(r.URL.Query().Get("rental_unit"))
	if err != nil {
		writeError(w, err)
		return
	}
	price, err := h.products.PriceForUnit(r.Context(), id, unit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rental_unit": unit, "price": price})
}

type rentalQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *ProductHandler) ConfirmRental(w http.ResponseWriter, r *http.Request) {
	h.adjustRental(w, r, h.products.ConfirmRental)
}

func (h *ProductHandler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	h.adjustRental(w, r, h.products.ReturnRental)
}

func (h *ProductHandler) adjustRental(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id uuid.UUID, qty int) (*domain.Product, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req rentalQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	product, err := op(r.Context(), id, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// RegisterProductRoutes mounts the product endpoints
func RegisterProductRoutes(router *mux.Router, products service.ProductService) {
	h := NewProductHandler(products)
	router.HandleFunc("/api/v1/products", h.Create).Methods("POST")
	router.HandleFunc("/api/v1/products", h.List).Methods("GET")
	router.HandleFunc("/api/v1/products/search", h.Search).Methods("GET")
	router.HandleFunc("/api/v1/products/{id}", h.Get).Methods("GET")
	router.HandleFunc("/api/v1/products/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/api/v1/products/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/api/v1/products/{id}/price", h.Price).Methods("GET")
	router.HandleFunc("/api/v1/products/{id}/confirm-rental", h.ConfirmRental).Methods("POST")
	router.HandleFunc("/api/v1/products/{id}/return-rental", h.ReturnRental).Methods("POST")
}
