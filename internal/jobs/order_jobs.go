package jobs

import (
	"context"
	"time"

	"rentmart-backend/internal/logger"
)

// SendReturnReminders finds DELIVERED orders whose pickup date has passed and
// logs a reminder for each. Notification delivery is handled by an external
// channel that consumes these log events.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		orders, err := jr.store.Orders().ListDueForReturn(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list orders due for return", "error", err)
			return
		}

		for _, o := range orders {
			logger.Info("Return overdue",
				"order_id", o.ID,
				"user_id", o.UserID,
				"product_id", o.ProductID,
				"pickup_date", o.PickupDate,
				"amount_due", o.AmountDue,
			)
		}

		logger.Info("Sent return reminders", "count", len(orders))
	})
}
