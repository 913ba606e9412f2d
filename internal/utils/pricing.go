package utils

import (
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
)

// Platform charge is tiered: orders above the threshold pay the lower rate so
// that small orders are not effectively charge-free.
var (
	platformChargeThreshold = decimal.RequireFromString("1000")
	platformChargeRateHigh  = decimal.RequireFromString("0.05")
	platformChargeRateLow   = decimal.RequireFromString("0.08")
	taxRate                 = decimal.RequireFromString("0.025")
)

// CalculateAmount computes the full order cost breakdown from the quantity and
// the chosen per-unit price. Pure function, no rounding beyond decimal
// arithmetic.
func CalculateAmount(quantity int, unitPrice decimal.Decimal) domain.Amount {
	itemTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	rate := platformChargeRateLow
	if itemTotal.GreaterThanOrEqual(platformChargeThreshold) {
		rate = platformChargeRateHigh
	}
	platformCharge := itemTotal.Mul(rate)

	subtotal := itemTotal.Add(platformCharge)
	tax := subtotal.Mul(taxRate)

	return domain.Amount{
		ItemTotal:      itemTotal,
		PlatformCharge: platformCharge,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal.Add(tax),
	}
}
