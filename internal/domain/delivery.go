package domain

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryType string

const (
	DeliveryTypePickup DeliveryType = "PICKUP"
	DeliveryTypeDrop   DeliveryType = "DROP"
)

// Delivery is one fulfillment leg of an order. A confirmed order owns exactly
// one DROP and one PICKUP leg.
type Delivery struct {
	ID                uuid.UUID    `json:"id"`
	OrderID           uuid.UUID    `json:"order_id"`
	DeliveryType      DeliveryType `json:"delivery_type"`
	DeliveryPartnerID uuid.UUID    `json:"delivery_partner_id"`
	Ratings           *int         `json:"ratings,omitempty"`
}

// ValidateRating enforces the 1-5 rating range shared by order and delivery
// ratings. A nil rating is allowed (not yet rated).
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return ErrInvalidRating(map[string]any{"ratings": *rating})
	}
	return nil
}

// DeliveryPartner is the lookup collaborator matched against order locations
// by postal code.
type DeliveryPartner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   Address   `json:"address"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}
