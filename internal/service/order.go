package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
	"rentmart-backend/internal/utils"
)

type orderService struct {
	store repository.Store
	calc  *AvailabilityCalculator
}

func NewOrderService(store repository.Store) OrderService {
	return &orderService{
		store: store,
		calc:  NewAvailabilityCalculator(),
	}
}

// CreateOrder validates the rental window, checks availability, prices the
// order and persists it. Orders created directly in CONFIRMED status are
// assigned to delivery partners in the same transaction.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity("", map[string]any{"quantity": in.Quantity})
	}
	if in.OrderStatus == "" {
		in.OrderStatus = domain.OrderStatusDraft
	}
	if in.OrderStatus != domain.OrderStatusDraft && in.OrderStatus != domain.OrderStatusConfirmed {
		return nil, domain.ErrInvalidOrderStatus(
			"Orders can only be created in DRAFT or CONFIRMED status",
			map[string]any{"requested_status": in.OrderStatus},
		)
	}
	if err := domain.ValidateRentWindow(in.RentStartDate, in.RentEndDate, in.DeliveryDate, in.PickupDate); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := s.store.ExecTx(ctx, func(st repository.Store) error {
		product, err := st.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		unitPrice, err := product.PriceFor(in.Rate)
		if err != nil {
			return err
		}

		existing, err := st.Orders().ListOpenByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		free := s.calc.FreeQuantity(product, existing, in.RentStartDate, in.RentEndDate)
		if free < in.Quantity {
			return domain.ErrInsufficientStock(map[string]any{
				"product_id": in.ProductID.String(),
				"requested":  in.Quantity,
				"free":       free,
			})
		}

		amount := utils.CalculateAmount(in.Quantity, unitPrice)
		order = &domain.Order{
			UserID:           in.UserID,
			ProductID:        in.ProductID,
			Quantity:         in.Quantity,
			RentStartDate:    in.RentStartDate,
			RentEndDate:      in.RentEndDate,
			DeliveryLocation: in.DeliveryLocation,
			PickupLocation:   in.PickupLocation,
			DeliveryDate:     in.DeliveryDate,
			PickupDate:       in.PickupDate,
			Amount:           amount,
			AmountPaid:       decimal.Zero,
			AmountDue:        amount.Total,
			OrderStatus:      in.OrderStatus,
			PaymentStatus:    domain.PaymentStatusNotApplicable,
		}
		if err := st.Orders().Create(ctx, order); err != nil {
			return err
		}
		if in.OrderStatus == domain.OrderStatusConfirmed {
			return assignDeliveryPartners(ctx, st, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.store.Orders().GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Orders().List(ctx, limit, offset)
}

func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Orders().ListByUser(ctx, userID, limit, offset)
}

func (s *orderService) ListOrdersByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Orders().ListByProduct(ctx, productID, limit, offset)
}

func (s *orderService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Orders().ListByStatus(ctx, status, limit, offset)
}

func (s *orderService) ListOrdersByShopOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.store.Orders().ListByShopOwner(ctx, ownerID, limit, offset)
}

// UpdateOrderStatus applies a status transition and its side effects in one
// transaction: entering CONFIRMED assigns delivery partners, entering SHIPPED
// moves stock to rented, entering PICKED returns it.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.ExecTx(ctx, func(st repository.Store) error {
		current, err := st.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.OrderStatus.CanTransitionTo(status) {
			return domain.ErrInvalidOrderStatus(
				fmt.Sprintf("Cannot transition from %s to %s", current.OrderStatus, status),
				map[string]any{
					"current_status":   current.OrderStatus,
					"requested_status": status,
				},
			)
		}
		switch status {
		case domain.OrderStatusConfirmed:
			if err := assignDeliveryPartners(ctx, st, current); err != nil {
				return err
			}
		case domain.OrderStatusShipped:
			if _, err := st.Products().ConfirmRental(ctx, current.ProductID, current.Quantity); err != nil {
				return err
			}
		case domain.OrderStatusPicked:
			if _, err := st.Products().ReturnRental(ctx, current.ProductID, current.Quantity); err != nil {
				return err
			}
		}
		updated, err = st.Orders().UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Order, error) {
	current, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.PaymentStatus.CanTransitionTo(status) {
		return nil, domain.ErrInvalidPaymentStatus(
			fmt.Sprintf("Cannot transition from %s to %s", current.PaymentStatus, status),
			map[string]any{
				"current_status":   current.PaymentStatus,
				"requested_status": status,
			},
		)
	}
	return s.store.Orders().UpdatePaymentStatus(ctx, id, status)
}

// RecordPayment stores the new paid amount, recomputes the due amount and
// derives the payment status from the paid/total ratio.
func (s *orderService) RecordPayment(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.ExecTx(ctx, func(st repository.Store) error {
		current, err := st.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if amountPaid.GreaterThan(current.Amount.Total) {
			return domain.ErrInsufficientPayment(
				"Payment amount cannot exceed order total",
				map[string]any{
					"order_total":    current.Amount.Total,
					"payment_amount": amountPaid,
				},
			)
		}
		derived := domain.DerivePaymentStatus(amountPaid, current.Amount.Total)
		if derived != current.PaymentStatus && !current.PaymentStatus.CanTransitionTo(derived) {
			return domain.ErrInvalidPaymentStatus(
				fmt.Sprintf("Cannot transition from %s to %s", current.PaymentStatus, derived),
				map[string]any{
					"current_status":   current.PaymentStatus,
					"requested_status": derived,
				},
			)
		}
		due := current.Amount.Total.Sub(amountPaid)
		updated, err = st.Orders().UpdateAmountPaid(ctx, id, amountPaid, due)
		if err != nil {
			return err
		}
		if derived != updated.PaymentStatus {
			updated, err = st.Orders().UpdatePaymentStatus(ctx, id, derived)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompletePickup is the dedicated DELIVERED to PICKED transition: it requires
// the full balance to be settled and returns the rented stock.
func (s *orderService) CompletePickup(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.ExecTx(ctx, func(st repository.Store) error {
		current, err := st.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.OrderStatus != domain.OrderStatusDelivered {
			return domain.ErrInvalidOrderStatus(
				"Order must be in DELIVERED status to mark as picked up",
				map[string]any{"current_status": current.OrderStatus},
			)
		}
		if current.AmountDue.GreaterThan(decimal.Zero) {
			return domain.ErrInsufficientPayment(
				"Cannot mark as picked up with outstanding payment",
				map[string]any{
					"order_id":   id.String(),
					"amount_due": current.AmountDue,
				},
			)
		}
		if _, err := st.Products().ReturnRental(ctx, current.ProductID, current.Quantity); err != nil {
			return err
		}
		updated, err = st.Orders().UpdateStatus(ctx, id, domain.OrderStatusPicked)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) UpdateDeliveryPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	return s.store.Orders().UpdateDeliveryPhotos(ctx, id, photoIDs)
}

func (s *orderService) UpdatePickupPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	return s.store.Orders().UpdatePickupPhotos(ctx, id, photoIDs)
}

// UpdateRatings records the customer rating. Ratings are accepted only once
// the order has reached PICKED.
func (s *orderService) UpdateRatings(ctx context.Context, id uuid.UUID, rating int) (*domain.Order, error) {
	if err := domain.ValidateRating(&rating); err != nil {
		return nil, err
	}
	current, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OrderStatus != domain.OrderStatusPicked {
		return nil, domain.ErrInvalidOrderStatus(
			"Ratings can only be recorded for picked up orders",
			map[string]any{"current_status": current.OrderStatus},
		)
	}
	return s.store.Orders().UpdateRatings(ctx, id, rating)
}

func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	current, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OrderStatus.Cancellable() {
		return nil, domain.ErrOrderNotCancellable(
			fmt.Sprintf("Order with status %s cannot be cancelled", current.OrderStatus),
			map[string]any{"current_status": current.OrderStatus},
		)
	}
	return s.store.Orders().UpdateStatus(ctx, id, domain.OrderStatusCancelled)
}

// DeleteOrder hard-deletes an order. Administrative escape hatch only.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.store.Orders().Delete(ctx, id)
}
