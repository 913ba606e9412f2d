package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) SearchByName(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) ConfirmRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) ReturnRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, productID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListOpenByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Order, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByShopOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListDueForReturn(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateAmountPaid(ctx context.Context, id uuid.UUID, paid, due decimal.Decimal) (*domain.Order, error) {
	args := m.Called(ctx, id, paid, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateDeliveryPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id, photoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdatePickupPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id, photoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateRatings(ctx context.Context, id uuid.UUID, rating int) (*domain.Order, error) {
	args := m.Called(ctx, id, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDeliveryRepo
type MockDeliveryRepo struct {
	mock.Mock
}

func (m *MockDeliveryRepo) Create(ctx context.Context, delivery *domain.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}
func (m *MockDeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}
func (m *MockDeliveryRepo) List(ctx context.Context, limit, offset int) ([]domain.Delivery, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Delivery), args.Error(1)
}
func (m *MockDeliveryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Delivery), args.Error(1)
}
func (m *MockDeliveryRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating int) (*domain.Delivery, error) {
	args := m.Called(ctx, id, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

// MockPartnerRepo
type MockPartnerRepo struct {
	mock.Mock
}

func (m *MockPartnerRepo) Create(ctx context.Context, partner *domain.DeliveryPartner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}
func (m *MockPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryPartner), args.Error(1)
}
func (m *MockPartnerRepo) ListActive(ctx context.Context) ([]domain.DeliveryPartner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DeliveryPartner), args.Error(1)
}
func (m *MockPartnerRepo) Update(ctx context.Context, partner *domain.DeliveryPartner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}
func (m *MockPartnerRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockStore bundles the repository mocks behind the Store interface. ExecTx
// simply runs fn against the same store, mirroring how a transaction-bound
// store exposes the same repositories.
type mockStore struct {
	products   *MockProductRepo
	orders     *MockOrderRepo
	deliveries *MockDeliveryRepo
	partners   *MockPartnerRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		products:   new(MockProductRepo),
		orders:     new(MockOrderRepo),
		deliveries: new(MockDeliveryRepo),
		partners:   new(MockPartnerRepo),
	}
}

func (s *mockStore) Products() repository.ProductRepository { return s.products }

func (s *mockStore) Orders() repository.OrderRepository { return s.orders }

func (s *mockStore) Deliveries() repository.DeliveryRepository { return s.deliveries }

func (s *mockStore) Partners() repository.DeliveryPartnerRepository { return s.partners }

func (s *mockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *mockStore) assertExpectations(t mock.TestingT) {
	s.products.AssertExpectations(t)
	s.orders.AssertExpectations(t)
	s.deliveries.AssertExpectations(t)
	s.partners.AssertExpectations(t)
}
