package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
)

// ProductFilter narrows product listings. Nil fields match everything.
type ProductFilter struct {
	OwnerID    *uuid.UUID
	CategoryID *uuid.UUID
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SearchByName(ctx context.Context, term string, limit int) ([]domain.Product, error)

	// ConfirmRental and ReturnRental are single conditional updates: the
	// quantity guard is part of the UPDATE statement, never a prior read.
	ConfirmRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
	ReturnRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error)
	ListByShopOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Order, error)
	// ListOpenByProduct returns every non-DRAFT, non-terminal order on the
	// product, unpaginated. The availability calculator must see the complete
	// set of live commitments; terminal orders never affect the result.
	ListOpenByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Order, error)
	ListDueForReturn(ctx context.Context, asOf time.Time) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Order, error)
	UpdateAmountPaid(ctx context.Context, id uuid.UUID, paid, due decimal.Decimal) (*domain.Order, error)
	UpdateDeliveryPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error)
	UpdatePickupPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error)
	UpdateRatings(ctx context.Context, id uuid.UUID, rating int) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	List(ctx context.Context, limit, offset int) ([]domain.Delivery, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) (*domain.Delivery, error)
}

type DeliveryPartnerRepository interface {
	Create(ctx context.Context, partner *domain.DeliveryPartner) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryPartner, error)
	// ListActive returns non-deleted partners in creation order; the matcher
	// relies on this ordering being stable.
	ListActive(ctx context.Context) ([]domain.DeliveryPartner, error)
	Update(ctx context.Context, partner *domain.DeliveryPartner) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Store bundles the repositories behind one handle and provides the
// transaction boundary for multi-step operations.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository
	Deliveries() DeliveryRepository
	Partners() DeliveryPartnerRepository

	// ExecTx runs fn against transaction-bound repositories. Any error rolls
	// the whole unit back.
	ExecTx(ctx context.Context, fn func(Store) error) error
}
