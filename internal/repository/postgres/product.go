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

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

const productColumns = `id, name, COALESCE(description, ''), category_id, owner_id,
	rental_units, price, security_deposit, defect_charges, COALESCE(care_instruction, ''),
	total_quantity, available_quantity, reserved_quantity, rented_quantity, images_id,
	is_deleted, created_at`

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	priceJSON, err := json.Marshal(p.Price)
	if err != nil {
		return fmt.Errorf("marshal price table: %w", err)
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `INSERT INTO products (
		id, name, description, category_id, owner_id, rental_units, price,
		security_deposit, defect_charges, care_instruction, total_quantity,
		available_quantity, reserved_quantity, rented_quantity, images_id, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11, 0, 0, $12, $13)
	RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.CategoryID, p.OwnerID,
		pq.Array(rentalUnitsToStrings(p.RentalUnits)), priceJSON,
		p.SecurityDeposit, p.DefectCharges, p.CareInstruction,
		p.TotalQuantity, pq.Array(uuidsToStrings(p.ImagesID)), time.Now().UTC(),
	).Scan(&p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrProductAlreadyExists(map[string]any{"product_id": p.ID.String()})
		}
		return fmt.Errorf("insert product: %w", err)
	}

	// Mirror the database's initial counter state.
	p.AvailableQty = p.TotalQuantity
	p.ReservedQty = 0
	p.RentedQty = 0
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound(map[string]any{"product_id": id.String()})
		}
		return nil, err
	}
	if p.IsDeleted {
		return nil, domain.ErrProductDeleted(map[string]any{"product_id": id.String()})
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_deleted = FALSE`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	priceJSON, err := json.Marshal(p.Price)
	if err != nil {
		return fmt.Errorf("marshal price table: %w", err)
	}

	query := `UPDATE products SET
		name = $2, description = $3, category_id = $4, rental_units = $5, price = $6,
		security_deposit = $7, defect_charges = $8, care_instruction = $9,
		total_quantity = $10, images_id = $11
	WHERE id = $1 AND is_deleted = FALSE`

	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.CategoryID,
		pq.Array(rentalUnitsToStrings(p.RentalUnits)), priceJSON,
		p.SecurityDeposit, p.DefectCharges, p.CareInstruction,
		p.TotalQuantity, pq.Array(uuidsToStrings(p.ImagesID)),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProductNotFound(map[string]any{"product_id": p.ID.String()})
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProductNotFound(map[string]any{"product_id": id.String()})
	}
	return nil
}

func (r *productRepository) SearchByName(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	WHERE to_tsvector('english', name) @@ plainto_tsquery('english', $1)
	  AND is_deleted = FALSE
	ORDER BY ts_rank(to_tsvector('english', name), plainto_tsquery('english', $1)) DESC
	LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ConfirmRental moves quantity from available to rented with a single
// conditional UPDATE; the quantity guard inside the statement is what makes
// concurrent confirmations safe.
func (r *productRepository) ConfirmRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	query := `UPDATE products
	SET available_quantity = available_quantity - $2,
	    rented_quantity = rented_quantity + $2
	WHERE id = $1 AND available_quantity >= $2 AND is_deleted = FALSE
	RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Distinguish missing/deleted product from a stock shortfall.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInsufficientQuantity(
				"Not enough available quantity to confirm rental",
				map[string]any{"product_id": id.String(), "requested_quantity": quantity},
			)
		}
		return nil, err
	}
	return p, nil
}

// ReturnRental is the inverse conditional UPDATE, guarded on rented_quantity.
func (r *productRepository) ReturnRental(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	query := `UPDATE products
	SET rented_quantity = rented_quantity - $2,
	    available_quantity = available_quantity + $2
	WHERE id = $1 AND rented_quantity >= $2 AND is_deleted = FALSE
	RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInsufficientQuantity(
				"Cannot return more than the rented quantity",
				map[string]any{"product_id": id.String(), "return_quantity": quantity},
			)
		}
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p          domain.Product
		units      []string
		priceJSON  []byte
		imagesText []string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.OwnerID,
		pq.Array(&units), &priceJSON, &p.SecurityDeposit, &p.DefectCharges,
		&p.CareInstruction, &p.TotalQuantity, &p.AvailableQty, &p.ReservedQty,
		&p.RentedQty, pq.Array(&imagesText), &p.IsDeleted, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	p.RentalUnits = stringsToRentalUnits(units)
	if err := json.Unmarshal(priceJSON, &p.Price); err != nil {
		return nil, fmt.Errorf("unmarshal price table: %w", err)
	}
	p.ImagesID, err = stringsToUUIDs(imagesText)
	if err != nil {
		return nil, fmt.Errorf("parse image ids: %w", err)
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func rentalUnitsToStrings(units []domain.RentalUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = string(u)
	}
	return out
}

func stringsToRentalUnits(raw []string) []domain.RentalUnit {
	out := make([]domain.RentalUnit, len(raw))
	for i, s := range raw {
		out[i] = domain.RentalUnit(s)
	}
	return out
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
