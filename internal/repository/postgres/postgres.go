package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store is the persistence gateway. It owns the connection pool handed to
// it by main and exposes every repository bound to that pool.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
	repository.BrandRepository
	repository.CarFeatureRepository
	repository.CarRepository
	repository.UserRepository
	repository.RentalRepository
}

type StoreOption func(*Store)

// WithQueryTimeout bounds every statement issued through the store. Zero
// leaves statements bounded only by the caller's context.
func WithQueryTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.queryTimeout = d }
}

func NewStore(db *sql.DB, opts ...StoreOption) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	repos := newRepositories(&gateway{q: db, timeout: s.queryTimeout})
	s.BrandRepository = repos.Brands
	s.CarFeatureRepository = repos.CarFeatures
	s.CarRepository = repos.Cars
	s.UserRepository = repos.Users
	s.RentalRepository = repos.Rentals
	return s
}

func newRepositories(g *gateway) repository.Repositories {
	return repository.Repositories{
		Brands:      &brandRepository{g: g},
		CarFeatures: &carFeatureRepository{g: g},
		Cars:        &carRepository{g: g},
		Users:       &userRepository{g: g},
		Rentals:     &rentalRepository{g: g},
	}
}

// Repositories returns the pool-bound repositories.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Brands:      s.BrandRepository,
		CarFeatures: s.CarFeatureRepository,
		Cars:        s.CarRepository,
		Users:       s.UserRepository,
		Rentals:     s.RentalRepository,
	}
}

// WithinTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back on error or panic.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logger.WarnContext(ctx, "Transaction rollback failed", "error", rbErr, "cause", err)
			}
		}
	}()

	if err = fn(ctx, newRepositories(&gateway{q: tx, timeout: s.queryTimeout})); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
