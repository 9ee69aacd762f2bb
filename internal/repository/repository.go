package repository

import (
	"context"

	"car-rental-backend/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist. Update and Delete
// do the same when no row matched the id.

type BrandRepository interface {
	List(ctx context.Context) ([]domain.Brand, error)
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
}

type CarFeatureRepository interface {
	List(ctx context.Context) ([]domain.CarFeature, error)
	GetByID(ctx context.Context, id int64) (*domain.CarFeature, error)
}

type CarRepository interface {
	List(ctx context.Context) ([]domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	// GetByIDForUpdate locks the car row until the surrounding transaction
	// ends. Outside a transaction the lock is released immediately.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error)
	Create(ctx context.Context, car *domain.Car) error
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id int64) (*domain.Car, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

type RentalRepository interface {
	List(ctx context.Context) ([]domain.Rental, error)
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.Rental, error)
	Create(ctx context.Context, rental *domain.Rental) error
	Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	Delete(ctx context.Context, id int64) (*domain.Rental, error)
}

// Repositories is the set of repositories bound to one connection scope,
// either the pool or a single transaction.
type Repositories struct {
	Brands      BrandRepository
	CarFeatures CarFeatureRepository
	Cars        CarRepository
	Users       UserRepository
	Rentals     RentalRepository
}

// UnitOfWork runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
