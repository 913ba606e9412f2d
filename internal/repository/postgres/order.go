package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

const orderColumns = `id, user_id, product_id, quantity, rent_start_date, rent_end_date,
	delivery_location, pickup_location, delivery_date, pickup_date, amount,
	amount_paid, amount_due, order_status, payment_status, delivery_photo_id,
	pickup_photo_id, ratings, created_at, updated_at`

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	deliveryLoc, err := json.Marshal(o.DeliveryLocation)
	if err != nil {
		return fmt.Errorf("marshal delivery location: %w", err)
	}
	pickupLoc, err := json.Marshal(o.PickupLocation)
	if err != nil {
		return fmt.Errorf("marshal pickup location: %w", err)
	}
	amount, err := json.Marshal(o.Amount)
	if err != nil {
		return fmt.Errorf("marshal amount: %w", err)
	}

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now().UTC()
	query := `INSERT INTO orders (
		id, user_id, product_id, quantity, rent_start_date, rent_end_date,
		delivery_location, pickup_location, delivery_date, pickup_date, amount,
		amount_paid, amount_due, order_status, payment_status,
		delivery_photo_id, pickup_photo_id, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
	RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		o.ID, o.UserID, o.ProductID, o.Quantity, o.RentStartDate, o.RentEndDate,
		deliveryLoc, pickupLoc, o.DeliveryDate, o.PickupDate, amount,
		o.AmountPaid, o.AmountDue, o.OrderStatus, o.PaymentStatus,
		pq.Array(uuidsToStrings(o.DeliveryPhotoID)), pq.Array(uuidsToStrings(o.PickupPhotoID)),
		now,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrOrderAlreadyExists(map[string]any{"order_id": o.ID.String()})
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound(map[string]any{"order_id": id.String()})
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1
	ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(ctx, query, userID, limit, offset)
}

func (r *orderRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE product_id = $1
	ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(ctx, query, productID, limit, offset)
}

// ListOpenByProduct feeds the availability calculation: only orders that can
// still hold or release stock, with no pagination cap so no live commitment
// is ever dropped.
func (r *orderRepository) ListOpenByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	WHERE product_id = $1 AND order_status NOT IN ($2, $3, $4)
	ORDER BY rent_start_date ASC`
	return r.queryOrders(ctx, query, productID,
		domain.OrderStatusDraft, domain.OrderStatusPicked, domain.OrderStatusCancelled)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_status = $1
	ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(ctx, query, status, limit, offset)
}

func (r *orderRepository) ListByShopOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumnsPrefixed("o") + ` FROM orders o
	JOIN products p ON p.id = o.product_id
	WHERE p.owner_id = $1
	ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(ctx, query, ownerID, limit, offset)
}

func (r *orderRepository) ListDueForReturn(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	WHERE order_status = $1 AND pickup_date < $2
	ORDER BY pickup_date ASC`
	return r.queryOrders(ctx, query, domain.OrderStatusDelivered, asOf)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET order_status = $2, updated_at = $3 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, status, time.Now().UTC())
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Order, error) {
	query := `UPDATE orders SET payment_status = $2, updated_at = $3 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, status, time.Now().UTC())
}

func (r *orderRepository) UpdateAmountPaid(ctx context.Context, id uuid.UUID, paid, due decimal.Decimal) (*domain.Order, error) {
	query := `UPDATE orders SET amount_paid = $2, amount_due = $3, updated_at = $4 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, paid, due, time.Now().UTC())
}

func (r *orderRepository) UpdateDeliveryPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	query := `UPDATE orders SET delivery_photo_id = $2, updated_at = $3 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, pq.Array(uuidsToStrings(photoIDs)), time.Now().UTC())
}

func (r *orderRepository) UpdatePickupPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) (*domain.Order, error) {
	query := `UPDATE orders SET pickup_photo_id = $2, updated_at = $3 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, pq.Array(uuidsToStrings(photoIDs)), time.Now().UTC())
}

func (r *orderRepository) UpdateRatings(ctx context.Context, id uuid.UUID, rating int) (*domain.Order, error) {
	query := `UPDATE orders SET ratings = $2, updated_at = $3 WHERE id = $1
	RETURNING ` + orderColumns
	return r.returningOrder(ctx, id, query, id, rating, time.Now().UTC())
}

// Delete is the administrative escape hatch; normal flows never remove orders.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrOrderNotFound(map[string]any{"order_id": id.String()})
	}
	return nil
}

func (r *orderRepository) returningOrder(ctx context.Context, id uuid.UUID, query string, args ...any) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound(map[string]any{"order_id": id.String()})
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o              domain.Order
		deliveryLoc    []byte
		pickupLoc      []byte
		amount         []byte
		deliveryPhotos []string
		pickupPhotos   []string
		ratings        sql.NullInt64
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.RentStartDate, &o.RentEndDate,
		&deliveryLoc, &pickupLoc, &o.DeliveryDate, &o.PickupDate, &amount,
		&o.AmountPaid, &o.AmountDue, &o.OrderStatus, &o.PaymentStatus,
		pq.Array(&deliveryPhotos), pq.Array(&pickupPhotos), &ratings,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(deliveryLoc, &o.DeliveryLocation); err != nil {
		return nil, fmt.Errorf("unmarshal delivery location: %w", err)
	}
	if err := json.Unmarshal(pickupLoc, &o.PickupLocation); err != nil {
		return nil, fmt.Errorf("unmarshal pickup location: %w", err)
	}
	if err := json.Unmarshal(amount, &o.Amount); err != nil {
		return nil, fmt.Errorf("unmarshal amount: %w", err)
	}
	if o.DeliveryPhotoID, err = stringsToUUIDs(deliveryPhotos); err != nil {
		return nil, fmt.Errorf("parse delivery photo ids: %w", err)
	}
	if o.PickupPhotoID, err = stringsToUUIDs(pickupPhotos); err != nil {
		return nil, fmt.Errorf("parse pickup photo ids: %w", err)
	}
	if ratings.Valid {
		v := int(ratings.Int64)
		o.Ratings = &v
	}
	return &o, nil
}

func orderColumnsPrefixed(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.user_id, %[1]s.product_id, %[1]s.quantity,
	%[1]s.rent_start_date, %[1]s.rent_end_date, %[1]s.delivery_location,
	%[1]s.pickup_location, %[1]s.delivery_date, %[1]s.pickup_date, %[1]s.amount,
	%[1]s.amount_paid, %[1]s.amount_due, %[1]s.order_status, %[1]s.payment_status,
	%[1]s.delivery_photo_id, %[1]s.pickup_photo_id, %[1]s.ratings,
	%[1]s.created_at, %[1]s.updated_at`, alias)
}
