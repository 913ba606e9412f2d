package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

// Pagination bounds for all listing operations.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// NormalizePage applies the default limit and rejects out-of-range values.
func NormalizePage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return 0, 0, domain.ErrInvalidPagination(
			"Limit must be between 1 and 1000",
			map[string]any{"limit": limit},
		)
	}
	if offset < 0 {
		return 0, 0, domain.ErrInvalidPagination(
			"Offset must not be negative",
			map[string]any{"offset": offset},
		)
	}
	return limit, offset, nil
}

// CreateOrderInput carries everything needed to place an order. OrderStatus
// may only be DRAFT or CONFIRMED at creation time.
type CreateOrderInput struct {
	UserID           uuid.UUID
	ProductID        uuid.UUID
	Quantity         int
	Rate             domain.RentalUnit
	RentStartDate    time.Time
	RentEndDate      time.Time
	DeliveryLocation domain.Address
	PickupLocation   domain.Address
	DeliveryDate     time.Time
	PickupDate       time.Time
	OrderStatus      domain.OrderStatus
}

type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error)
	ConfirmRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
	ReturnRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
	PriceForUnit(ctx context.Context, id uuid.UUID, unit domain.RentalUnit) (decimal.Decimal, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error)
	ListOrdersByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error)
	ListOrdersByShopOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Order, error)
	RecordPayment(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal) (*domain.Order, error)
	CompletePickup(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateDeliveryPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error)
	UpdatePickupPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error)
	UpdateRatings(ctx context.Context, id uuid.UUID, rating int) (*domain.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type DeliveryService interface {
	GetDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, limit, offset int) ([]domain.Delivery, error)
	ListDeliveriesByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error)
	RateDelivery(ctx context.Context, id uuid.UUID, rating int) (*domain.Delivery, error)
}

type DeliveryPartnerService interface {
	CreatePartner(ctx context.Context, partner *domain.DeliveryPartner) error
	GetPartner(ctx context.Context, id uuid.UUID) (*domain.DeliveryPartner, error)
	ListPartners(ctx context.Context) ([]domain.DeliveryPartner, error)
	UpdatePartner(ctx context.Context, partner *domain.DeliveryPartner) error
	DeletePartner(ctx context.Context, id uuid.UUID) error
}
