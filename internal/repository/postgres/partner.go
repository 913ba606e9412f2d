package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type deliveryPartnerRepository struct {
	db DBTX
}

func NewDeliveryPartnerRepository(db DBTX) repository.DeliveryPartnerRepository {
	return &deliveryPartnerRepository{db: db}
}

func (r *deliveryPartnerRepository) Create(ctx context.Context, p *domain.DeliveryPartner) error {
	addr, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("marshal partner address: %w", err)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `INSERT INTO delivery_partners (id, name, address, created_at)
	VALUES ($1, $2, $3, $4) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query, p.ID, p.Name, addr, time.Now().UTC()).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert delivery partner: %w", err)
	}
	return nil
}

func (r *deliveryPartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryPartner, error) {
	query := `SELECT id, name, address, is_deleted, created_at
	FROM delivery_partners WHERE id = $1 AND is_deleted = FALSE`
	p, err := scanPartner(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartnerNotFound(map[string]any{"partner_id": id.String()})
		}
		return nil, err
	}
	return p, nil
}

// ListActive returns partners in creation order so the assignment matcher is
// deterministic.
func (r *deliveryPartnerRepository) ListActive(ctx context.Context) ([]domain.DeliveryPartner, error) {
	query := `SELECT id, name, address, is_deleted, created_at
	FROM delivery_partners WHERE is_deleted = FALSE ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list delivery partners: %w", err)
	}
	defer rows.Close()

	var partners []domain.DeliveryPartner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, *p)
	}
	return partners, rows.Err()
}

func (r *deliveryPartnerRepository) Update(ctx context.Context, p *domain.DeliveryPartner) error {
	addr, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("marshal partner address: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE delivery_partners SET name = $2, address = $3 WHERE id = $1 AND is_deleted = FALSE`,
		p.ID, p.Name, addr)
	if err != nil {
		return fmt.Errorf("update delivery partner: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPartnerNotFound(map[string]any{"partner_id": p.ID.String()})
	}
	return nil
}

func (r *deliveryPartnerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE delivery_partners SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("delete delivery partner: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPartnerNotFound(map[string]any{"partner_id": id.String()})
	}
	return nil
}

func scanPartner(row rowScanner) (*domain.DeliveryPartner, error) {
	var (
		p    domain.DeliveryPartner
		addr []byte
	)
	err := row.Scan(&p.ID, &p.Name, &addr, &p.IsDeleted, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery partner: %w", err)
	}
	if err := json.Unmarshal(addr, &p.Address); err != nil {
		return nil, fmt.Errorf("unmarshal partner address: %w", err)
	}
	return &p, nil
}
