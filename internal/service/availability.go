package service

import (
	"time"

	"rentmart-backend/internal/domain"
)

// overlapTolerance is the grace margin applied to both window boundaries
// when deciding whether two rental windows conflict. Ties at the margin
// count as overlapping.
const overlapTolerance = 24 * time.Hour

// AvailabilityCalculator derives the quantity of a product free to reserve
// over a requested rental window. The raw available_quantity counter cannot
// express that two non-overlapping rentals may share the same unit in time,
// so commitments are replayed from the product's order history instead of
// maintained in a calendar index.
type AvailabilityCalculator struct{}

func NewAvailabilityCalculator() *AvailabilityCalculator {
	return &AvailabilityCalculator{}
}

// FreeQuantity computes the free stock for [start, end). Starting from the
// available_quantity baseline, every CONFIRMED order whose window conflicts
// with the requested one subtracts its quantity, and every open order that
// vacates at least one day before the requested start adds its quantity back
// (the baseline has not yet accounted for that return).
func (c *AvailabilityCalculator) FreeQuantity(product *domain.Product, orders []domain.Order, start, end time.Time) int {
	free := product.AvailableQty
	for _, o := range orders {
		if o.OrderStatus == domain.OrderStatusConfirmed &&
			windowsConflict(o.RentStartDate, o.RentEndDate, start, end) {
			free -= o.Quantity
		}
		if holdsStock(o.OrderStatus) && vacatedBefore(o.RentEndDate, start) {
			free += o.Quantity
		}
	}
	return free
}

// windowsConflict reports whether [aStart, aEnd) and [bStart, bEnd) overlap
// once each boundary is widened by the tolerance margin.
func windowsConflict(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.Add(-overlapTolerance).After(bEnd) &&
		!bStart.After(aEnd.Add(overlapTolerance))
}

// vacatedBefore reports whether a rental ending at rentEnd is genuinely clear
// of a window starting at start. Strictly beyond the tolerance margin: a tie
// at the margin is still a conflict, never a free-up.
func vacatedBefore(rentEnd, start time.Time) bool {
	return rentEnd.Add(overlapTolerance).Before(start)
}

// holdsStock reports whether an order in the given status still ties up
// units. DRAFT orders never held stock and terminal orders have released it.
func holdsStock(status domain.OrderStatus) bool {
	switch status {
	case domain.OrderStatusDraft, domain.OrderStatusPicked, domain.OrderStatusCancelled:
		return false
	}
	return true
}
