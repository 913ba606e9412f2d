package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"rentmart-backend/internal/repository"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves both pooled and transactional execution.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements repository.Store over a Postgres connection pool.
type Store struct {
	db       *sql.DB
	products repository.ProductRepository
	orders   repository.OrderRepository
	delivs   repository.DeliveryRepository
	partners repository.DeliveryPartnerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		products: NewProductRepository(db),
		orders:   NewOrderRepository(db),
		delivs:   NewDeliveryRepository(db),
		partners: NewDeliveryPartnerRepository(db),
	}
}

func (s *Store) Products() repository.ProductRepository         { return s.products }
func (s *Store) Orders() repository.OrderRepository             { return s.orders }
func (s *Store) Deliveries() repository.DeliveryRepository      { return s.delivs }
func (s *Store) Partners() repository.DeliveryPartnerRepository { return s.partners }

// txStore is a Store bound to a single open transaction. Nested ExecTx reuses
// the already-open transaction instead of starting a second one.
type txStore struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	delivs   repository.DeliveryRepository
	partners repository.DeliveryPartnerRepository
}

func (s *txStore) Products() repository.ProductRepository         { return s.products }
func (s *txStore) Orders() repository.OrderRepository             { return s.orders }
func (s *txStore) Deliveries() repository.DeliveryRepository      { return s.delivs }
func (s *txStore) Partners() repository.DeliveryPartnerRepository { return s.partners }

func (s *txStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// ExecTx runs fn inside one database transaction. Rollback is automatic on
// any returned error or panic.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	bound := &txStore{
		products: NewProductRepository(tx),
		orders:   NewOrderRepository(tx),
		delivs:   NewDeliveryRepository(tx),
		partners: NewDeliveryPartnerRepository(tx),
	}
	if err := fn(bound); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
