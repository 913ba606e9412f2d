package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

func newProductMock(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewProductRepository(db), mock
}

var productTestColumns = []string{
	"id", "name", "description", "category_id", "owner_id",
	"rental_units", "price", "security_deposit", "defect_charges", "care_instruction",
	"total_quantity", "available_quantity", "reserved_quantity", "rented_quantity", "images_id",
	"is_deleted", "created_at",
}

func productRow(id uuid.UUID, available, rented int, deleted bool) *sqlmock.Rows {
	return sqlmock.NewRows(productTestColumns).AddRow(
		id.String(), "Power Drill", "Cordless drill", uuid.New().String(), uuid.New().String(),
		"{PER_DAY}", []byte(`{"PER_DAY":"100"}`), "150", "30", "",
		5, available, 0, rented, "{}",
		deleted, time.Now().UTC(),
	)
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock := newProductMock(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(productRow(id, 3, 2, false))

		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, "Power Drill", p.Name)
		assert.Equal(t, 3, p.AvailableQty)
		assert.True(t, decimal.NewFromInt(100).Equal(p.Price[domain.RentalUnitPerDay]))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productTestColumns))

		_, err := repo.GetByID(ctx, id)
		assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
	})

	t.Run("SoftDeleted", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(productRow(id, 3, 2, true))

		_, err := repo.GetByID(ctx, id)
		assert.Equal(t, domain.CodeProductDeleted, domain.CodeOf(err))
	})
}

func TestProductRepository_Create(t *testing.T) {
	repo, mock := newProductMock(t)
	ctx := context.Background()

	product := func() *domain.Product {
		return &domain.Product{
			Name:        "Power Drill",
			CategoryID:  uuid.New(),
			OwnerID:     uuid.New(),
			RentalUnits: []domain.RentalUnit{domain.RentalUnitPerDay},
			Price: domain.PriceTable{
				domain.RentalUnitPerDay: decimal.NewFromInt(100),
			},
			SecurityDeposit: decimal.NewFromInt(150),
			DefectCharges:   decimal.NewFromInt(30),
			TotalQuantity:   5,
		}
	}

	t.Run("Success", func(t *testing.T) {
		p := product()
		mock.ExpectQuery("INSERT INTO products").
			WithArgs(sqlmock.AnyArg(), p.Name, p.Description, p.CategoryID, p.OwnerID,
				pq.Array([]string{"PER_DAY"}), []byte(`{"PER_DAY":"100"}`),
				p.SecurityDeposit, p.DefectCharges, p.CareInstruction,
				p.TotalQuantity, pq.Array([]string{}), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

		err := repo.Create(ctx, p)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, 5, p.AvailableQty)
		assert.Equal(t, 0, p.RentedQty)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("DuplicateID", func(t *testing.T) {
		p := product()
		p.ID = uuid.New()
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, p)
		assert.Equal(t, domain.CodeProductAlreadyExists, domain.CodeOf(err))
	})
}

func TestProductRepository_ConfirmRental(t *testing.T) {
	repo, mock := newProductMock(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 2).
			WillReturnRows(productRow(id, 3, 2, false))

		p, err := repo.ConfirmRental(ctx, id, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, p.AvailableQty)
		assert.Equal(t, 2, p.RentedQty)
	})

	t.Run("InsufficientQuantity", func(t *testing.T) {
		// Conditional UPDATE matches nothing, the re-read finds the product.
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 10).
			WillReturnRows(sqlmock.NewRows(productTestColumns))
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(productRow(id, 3, 2, false))

		_, err := repo.ConfirmRental(ctx, id, 10)
		assert.Equal(t, domain.CodeInsufficientQuantity, domain.CodeOf(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 2).
			WillReturnRows(sqlmock.NewRows(productTestColumns))
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productTestColumns))

		_, err := repo.ConfirmRental(ctx, id, 2)
		assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
	})

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 2).
			WillReturnRows(sqlmock.NewRows(productTestColumns))
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(productRow(id, 3, 2, true))

		_, err := repo.ConfirmRental(ctx, id, 2)
		assert.Equal(t, domain.CodeProductDeleted, domain.CodeOf(err))
	})
}

func TestProductRepository_ReturnRental(t *testing.T) {
	repo, mock := newProductMock(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 2).
			WillReturnRows(productRow(id, 5, 0, false))

		p, err := repo.ReturnRental(ctx, id, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, p.AvailableQty)
		assert.Equal(t, 0, p.RentedQty)
	})

	t.Run("ReturnExceedsRented", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(id, 8).
			WillReturnRows(sqlmock.NewRows(productTestColumns))
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(productRow(id, 3, 2, false))

		_, err := repo.ReturnRental(ctx, id, 8)
		assert.Equal(t, domain.CodeInsufficientQuantity, domain.CodeOf(err))
	})
}

func TestProductRepository_SoftDelete(t *testing.T) {
	repo, mock := newProductMock(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_deleted = TRUE").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_deleted = TRUE").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(ctx, id)
		assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
	})
}
