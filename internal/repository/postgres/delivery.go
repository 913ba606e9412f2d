package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type deliveryRepository struct {
	db DBTX
}

func NewDeliveryRepository(db DBTX) repository.DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, d *domain.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	query := `INSERT INTO deliveries (id, order_id, delivery_type, delivery_partner_id, ratings)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.OrderID, d.DeliveryType, d.DeliveryPartnerID, nullableInt(d.Ratings))
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	query := `SELECT id, order_id, delivery_type, delivery_partner_id, ratings
	FROM deliveries WHERE id = $1`
	d, err := scanDelivery(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound(map[string]any{"delivery_id": id.String()})
		}
		return nil, err
	}
	return d, nil
}

func (r *deliveryRepository) List(ctx context.Context, limit, offset int) ([]domain.Delivery, error) {
	query := `SELECT id, order_id, delivery_type, delivery_partner_id, ratings
	FROM deliveries ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func (r *deliveryRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error) {
	query := `SELECT id, order_id, delivery_type, delivery_partner_id, ratings
	FROM deliveries WHERE order_id = $1 ORDER BY delivery_type`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by order: %w", err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func (r *deliveryRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int) (*domain.Delivery, error) {
	query := `UPDATE deliveries SET ratings = $2 WHERE id = $1
	RETURNING id, order_id, delivery_type, delivery_partner_id, ratings`
	d, err := scanDelivery(r.db.QueryRowContext(ctx, query, id, rating))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound(map[string]any{"delivery_id": id.String()})
		}
		return nil, err
	}
	return d, nil
}

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var (
		d       domain.Delivery
		ratings sql.NullInt64
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.DeliveryType, &d.DeliveryPartnerID, &ratings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery: %w", err)
	}
	if ratings.Valid {
		v := int(ratings.Int64)
		d.Ratings = &v
	}
	return &d, nil
}

func collectDeliveries(rows *sql.Rows) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	return deliveries, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
