package service

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type BrandService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id int64) (*domain.Brand, error)
}

type CarFeatureService interface {
	ListCarFeatures(ctx context.Context) ([]domain.CarFeature, error)
	GetCarFeature(ctx context.Context, id int64) (*domain.CarFeature, error)
}

type CarService interface {
	ListCars(ctx context.Context) ([]domain.Car, error)
	GetCar(ctx context.Context, id int64) (*domain.Car, error)
	CreateCar(ctx context.Context, in CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id int64, in CarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int64) (*domain.Car, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, in UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (*domain.User, error)
}

type RentalService interface {
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	GetRental(ctx context.Context, id int64) (*domain.Rental, error)
	CreateRental(ctx context.Context, in RentalInput) (*domain.Rental, error)
	UpdateRental(ctx context.Context, id int64, in RentalInput) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id int64) (*domain.Rental, error)
}

// RentalInput is the request body of rental create and update. Every field
// is optional at this level; create checks for the required ones.
type RentalInput struct {
	UserID     *int64               `json:"user_id" validate:"omitempty,gt=0"`
	CarID      *int64               `json:"car_id" validate:"omitempty,gt=0"`
	StartDate  *string              `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string              `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	TotalPrice *decimal.Decimal     `json:"total_price"`
	Status     *domain.RentalStatus `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
}

type CarInput struct {
	BrandID    *int64           `json:"brand_id" validate:"omitempty,gt=0"`
	Model      *string          `json:"model" validate:"omitempty,min=1,max=100"`
	Year       *int             `json:"year"`
	DailyPrice *decimal.Decimal `json:"daily_price"`
	Available  *bool            `json:"available"`
}

type UserInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

// Option configures the services that depend on the current time.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
