package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusPicked    OrderStatus = "PICKED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusNotApplicable PaymentStatus = "NOT_APPLICABLE"
	PaymentStatusPartial       PaymentStatus = "PARTIAL"
	PaymentStatusFull          PaymentStatus = "FULL"
	PaymentStatusRefunded      PaymentStatus = "REFUNDED"
)

// orderTransitions is the full transition table. PICKED and CANCELLED have no
// outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:     {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusPicked},
	OrderStatusPicked:    {},
	OrderStatusCancelled: {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusNotApplicable: {PaymentStatusPartial, PaymentStatusFull},
	PaymentStatusPartial:       {PaymentStatusFull, PaymentStatusRefunded},
	PaymentStatusFull:          {PaymentStatusRefunded},
	PaymentStatusRefunded:      {},
}

// CanTransitionTo reports whether the status transition is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusDraft || s == OrderStatusConfirmed || s == OrderStatusShipped
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DerivePaymentStatus maps an amount paid against the order total: zero means
// NOT_APPLICABLE, a partial amount PARTIAL, the full total (or above) FULL.
func DerivePaymentStatus(amountPaid, total decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero():
		return PaymentStatusNotApplicable
	case amountPaid.LessThan(total):
		return PaymentStatusPartial
	default:
		return PaymentStatusFull
	}
}

// Address is the delivery/pickup location detail attached to orders and
// delivery partners. Matching uses the pincode only.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

// Amount is the computed cost breakdown owned by the order.
type Amount struct {
	ItemTotal      decimal.Decimal `json:"item_total"`
	PlatformCharge decimal.Decimal `json:"platform_charge"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
}

type Order struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	Quantity         int             `json:"quantity"`
	RentStartDate    time.Time       `json:"rent_start_date"`
	RentEndDate      time.Time       `json:"rent_end_date"`
	DeliveryLocation Address         `json:"delivery_location"`
	PickupLocation   Address         `json:"pickup_location"`
	DeliveryDate     time.Time       `json:"delivery_date"`
	PickupDate       time.Time       `json:"pickup_date"`
	Amount           Amount          `json:"amount"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	OrderStatus      OrderStatus     `json:"order_status"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	DeliveryPhotoID  []uuid.UUID     `json:"delivery_photo_id"`
	PickupPhotoID    []uuid.UUID     `json:"pickup_photo_id"`
	Ratings          *int            `json:"ratings,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ValidateRentWindow checks the half-open rental window ordering and the
// delivery/pickup date containment rules.
func ValidateRentWindow(rentStart, rentEnd, deliveryDate, pickupDate time.Time) error {
	if !rentStart.Before(rentEnd) {
		return ErrInvalidRentDates(map[string]any{
			"rent_start_date": rentStart,
			"rent_end_date":   rentEnd,
		})
	}
	if deliveryDate.After(rentStart) || pickupDate.Before(rentEnd) {
		return ErrInvalidDeliveryDates(map[string]any{
			"rent_start_date": rentStart,
			"rent_end_date":   rentEnd,
			"delivery_date":   deliveryDate,
			"pickup_date":     pickupDate,
		})
	}
	return nil
}
