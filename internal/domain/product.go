package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalUnit is the closed set of billing units a product may be rented by.
type RentalUnit string

const (
	RentalUnitPerHour  RentalUnit = "PER_HOUR"
	RentalUnitPerDay   RentalUnit = "PER_DAY"
	RentalUnitPerWeek  RentalUnit = "PER_WEEK"
	RentalUnitPerMonth RentalUnit = "PER_MONTH"
	RentalUnitPerYear  RentalUnit = "PER_YEAR"
)

// ParseRentalUnit validates a raw string against the closed enum.
func ParseRentalUnit(s string) (RentalUnit, error) {
	switch u := RentalUnit(s); u {
	case RentalUnitPerHour, RentalUnitPerDay, RentalUnitPerWeek, RentalUnitPerMonth, RentalUnitPerYear:
		return u, nil
	default:
		return "", ErrInvalidRentalUnit(fmt.Sprintf("unknown rental unit %q", s), map[string]any{"rental_unit": s})
	}
}

// PriceTable maps each supported rental unit to its per-unit price.
type PriceTable map[RentalUnit]decimal.Decimal

type Product struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	CategoryID      uuid.UUID       `json:"category_id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	RentalUnits     []RentalUnit    `json:"rental_units"`
	Price           PriceTable      `json:"price"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	DefectCharges   decimal.Decimal `json:"defect_charges"`
	CareInstruction string          `json:"care_instruction,omitempty"`
	TotalQuantity   int             `json:"total_quantity"`
	AvailableQty    int             `json:"available_quantity"`
	ReservedQty     int             `json:"reserved_quantity"`
	RentedQty       int             `json:"rented_quantity"`
	ImagesID        []uuid.UUID     `json:"images_id"`
	IsDeleted       bool            `json:"is_deleted"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ValidatePriceTable enforces exact key-set equality between the supported
// rental units and the price map, and non-negative prices.
func ValidatePriceTable(units []RentalUnit, price PriceTable) error {
	unitSet := make(map[RentalUnit]bool, len(units))
	for _, u := range units {
		unitSet[u] = true
	}
	if len(unitSet) != len(price) {
		return ErrInvalidPriceConfiguration(
			"Price configuration must include all rental units and no extras",
			map[string]any{"rental_units": units, "price_units": priceUnits(price)},
		)
	}
	for u, p := range price {
		if !unitSet[u] {
			return ErrInvalidPriceConfiguration(
				"Price configuration must include all rental units and no extras",
				map[string]any{"rental_units": units, "price_units": priceUnits(price)},
			)
		}
		if p.IsNegative() {
			return ErrInvalidPriceConfiguration(
				fmt.Sprintf("Price for %s must be non-negative", u),
				map[string]any{"unit": u, "price": p.String()},
			)
		}
	}
	return nil
}

func priceUnits(price PriceTable) []RentalUnit {
	units := make([]RentalUnit, 0, len(price))
	for u := range price {
		units = append(units, u)
	}
	return units
}

// PriceFor returns the per-unit price for the given rental unit, failing when
// the product does not support it.
func (p *Product) PriceFor(unit RentalUnit) (decimal.Decimal, error) {
	for _, u := range p.RentalUnits {
		if u == unit {
			return p.Price[unit], nil
		}
	}
	return decimal.Decimal{}, ErrInvalidRentalUnit(
		fmt.Sprintf("Rental unit %s is not available for this product", unit),
		map[string]any{
			"product_id":      p.ID.String(),
			"requested_unit":  unit,
			"available_units": p.RentalUnits,
		},
	)
}
