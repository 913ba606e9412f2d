package service

import (
	"context"

	"github.com/google/uuid"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

// assignDeliveryPartners matches a confirmed order with one partner per leg
// by postal code and records the DROP and PICKUP deliveries. Given the active
// partner list in creation order, the first partner serving a pincode wins;
// one partner may serve both legs. Runs inside the caller's transaction so a
// failed match leaves no delivery rows behind.
func assignDeliveryPartners(ctx context.Context, st repository.Store, order *domain.Order) error {
	partners, err := st.Partners().ListActive(ctx)
	if err != nil {
		return err
	}
	var dropPartner, pickupPartner uuid.NullUUID
	for _, p := range partners {
		if !dropPartner.Valid && p.Address.Pincode == order.DeliveryLocation.Pincode {
			dropPartner = uuid.NullUUID{UUID: p.ID, Valid: true}
		}
		if !pickupPartner.Valid && p.Address.Pincode == order.PickupLocation.Pincode {
			pickupPartner = uuid.NullUUID{UUID: p.ID, Valid: true}
		}
	}
	if !dropPartner.Valid || !pickupPartner.Valid {
		return domain.ErrDeliveryServiceNotAvailable(map[string]any{
			"order_id":         order.ID.String(),
			"delivery_pincode": order.DeliveryLocation.Pincode,
			"pickup_pincode":   order.PickupLocation.Pincode,
		})
	}
	drop := &domain.Delivery{
		OrderID:           order.ID,
		DeliveryType:      domain.DeliveryTypeDrop,
		DeliveryPartnerID: dropPartner.UUID,
	}
	if err := st.Deliveries().Create(ctx, drop); err != nil {
		return err
	}
	pickup := &domain.Delivery{
		OrderID:           order.ID,
		DeliveryType:      domain.DeliveryTypePickup,
		DeliveryPartnerID: pickupPartner.UUID,
	}
	return st.Deliveries().Create(ctx, pickup)
}

type deliveryService struct {
	store repository.Store
}

func NewDeliveryService(store repository.Store) DeliveryService {
	return &deliveryService{store: store}
}

func (s *deliveryService) GetDelivery(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return s.store.Deliveries().GetByID(ctx, id)
}

func (s *deliveryService) ListDeliveries(ctx context.Context, limit, offset int) ([]domain.Delivery, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Deliveries().List(ctx, limit, offset)
}

func (s *deliveryService) ListDeliveriesByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error) {
	return s.store.Deliveries().ListByOrder(ctx, orderID)
}

func (s *deliveryService) RateDelivery(ctx context.Context, id uuid.UUID, rating int) (*domain.Delivery, error) {
	if err := domain.ValidateRating(&rating); err != nil {
		return nil, err
	}
	return s.store.Deliveries().UpdateRating(ctx, id, rating)
}
