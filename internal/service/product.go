package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := domain.ValidatePriceTable(product.RentalUnits, product.Price); err != nil {
		return err
	}
	if product.TotalQuantity < 1 {
		return domain.ErrInsufficientQuantity(
			"Total quantity must be at least 1",
			map[string]any{"total_quantity": product.TotalQuantity},
		)
	}
	return s.store.Products().Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.store.Products().List(ctx, filter)
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := domain.ValidatePriceTable(product.RentalUnits, product.Price); err != nil {
		return err
	}
	return s.store.Products().Update(ctx, product)
}

// DeleteProduct soft-deletes a product. Deletion is blocked while any units
// are out on rent.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.RentedQty > 0 {
		return domain.ErrInsufficientQuantity(
			"Cannot delete product with active rentals",
			map[string]any{
				"product_id":      id.String(),
				"rented_quantity": product.RentedQty,
			},
		)
	}
	return s.store.Products().SoftDelete(ctx, id)
}

func (s *productService) SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	limit, _, err := NormalizePage(limit, 0)
	if err != nil {
		return nil, err
	}
	return s.store.Products().SearchByName(ctx, term, limit)
}

func (s *productService) ConfirmRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity("", map[string]any{"quantity": quantity})
	}
	return s.store.Products().ConfirmRental(ctx, id, quantity)
}

func (s *productService) ReturnRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity("", map[string]any{"quantity": quantity})
	}
	return s.store.Products().ReturnRental(ctx, id, quantity)
}

func (s *productService) PriceForUnit(ctx context.Context, id uuid.UUID, unit domain.RentalUnit) (decimal.Decimal, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return product.PriceFor(unit)
}
