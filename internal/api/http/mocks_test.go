package http

import (
	"context"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CreateRental(ctx context.Context, in service.RentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) UpdateRental(ctx context.Context, id int64, in service.RentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) DeleteRental(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) ListCars(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) CreateCar(ctx context.Context, in service.CarInput) (*domain.Car, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) UpdateCar(ctx context.Context, id int64, in service.CarInput) (*domain.Car, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) DeleteCar(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, in service.UserInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, id int64, in service.UserInput) (*domain.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBrandService struct {
	mock.Mock
}

func (m *MockBrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brand), args.Error(1)
}
func (m *MockBrandService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

type MockCarFeatureService struct {
	mock.Mock
}

func (m *MockCarFeatureService) ListCarFeatures(ctx context.Context) ([]domain.CarFeature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CarFeature), args.Error(1)
}
func (m *MockCarFeatureService) GetCarFeature(ctx context.Context, id int64) (*domain.CarFeature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarFeature), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type serviceMocks struct {
	rentals  *MockRentalService
	cars     *MockCarService
	users    *MockUserService
	brands   *MockBrandService
	features *MockCarFeatureService
	pinger   *MockPinger
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		rentals:  new(MockRentalService),
		cars:     new(MockCarService),
		users:    new(MockUserService),
		brands:   new(MockBrandService),
		features: new(MockCarFeatureService),
		pinger:   new(MockPinger),
	}
}

func (m *serviceMocks) services() Services {
	return Services{
		Brands:      m.brands,
		CarFeatures: m.features,
		Cars:        m.cars,
		Users:       m.users,
		Rentals:     m.rentals,
		Health:      m.pinger,
	}
}
