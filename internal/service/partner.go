package service

import (
	"context"

	"github.com/google/uuid"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type deliveryPartnerService struct {
	store repository.Store
}

func NewDeliveryPartnerService(store repository.Store) DeliveryPartnerService {
	return &deliveryPartnerService{store: store}
}

func (s *deliveryPartnerService) CreatePartner(ctx context.Context, partner *domain.DeliveryPartner) error {
	return s.store.Partners().Create(ctx, partner)
}

func (s *deliveryPartnerService) GetPartner(ctx context.Context, id uuid.UUID) (*domain.DeliveryPartner, error) {
	return s.store.Partners().GetByID(ctx, id)
}

// ListPartners returns active partners in creation order, the same order the
// assignment matcher scans them in.
func (s *deliveryPartnerService) ListPartners(ctx context.Context) ([]domain.DeliveryPartner, error) {
	return s.store.Partners().ListActive(ctx)
}

func (s *deliveryPartnerService) UpdatePartner(ctx context.Context, partner *domain.DeliveryPartner) error {
	return s.store.Partners().Update(ctx, partner)
}

func (s *deliveryPartnerService) DeletePartner(ctx context.Context, id uuid.UUID) error {
	return s.store.Partners().SoftDelete(ctx, id)
}
