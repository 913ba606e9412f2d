package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentmart-backend/internal/service"
)

// Services holds the service dependencies the HTTP layer exposes
type Services struct {
	Products   service.ProductService
	Orders     service.OrderService
	Deliveries service.DeliveryService
	Partners   service.DeliveryPartnerService
}

// NewRouter builds the full API router
func NewRouter(services Services) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	RegisterProductRoutes(router, services.Products)
	RegisterOrderRoutes(router, services.Orders)
	RegisterDeliveryRoutes(router, services.Deliveries)
	RegisterPartnerRoutes(router, services.Partners)

	return router
}
