package service

import (
	"context"
	"strings"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type carService struct {
	carRepo repository.CarRepository
	now     func() time.Time
}

func NewCarService(carRepo repository.CarRepository, opts ...Option) CarService {
	o := buildOptions(opts)
	return &carService{carRepo: carRepo, now: o.now}
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	logger.EnterMethod("carService.ListCars")
	cars, err := s.carRepo.List(ctx)
	if err != nil {
		return nil, exitWithError("carService.ListCars", translateStoreError(err))
	}
	logger.ExitMethod("carService.ListCars", "count", len(cars))
	return cars, nil
}

func (s *carService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	logger.EnterMethod("carService.GetCar", "carID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("carService.GetCar", err, "carID", id)
	}
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("carService.GetCar", translateStoreError(err), "carID", id)
	}
	if car == nil {
		return nil, exitWithError("carService.GetCar", domain.NotFound("car %d not found", id), "carID", id)
	}
	logger.ExitMethod("carService.GetCar", "carID", id)
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, in CarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.CreateCar")

	normalizeCarInput(&in)
	if err := requireFields(
		field("brand_id", in.BrandID),
		field("model", in.Model),
		field("year", in.Year),
		field("daily_price", in.DailyPrice),
	); err != nil {
		return nil, exitWithError("carService.CreateCar", err)
	}
	if err := s.checkCarInput(in); err != nil {
		return nil, exitWithError("carService.CreateCar", err)
	}

	car := &domain.Car{Available: true}
	applyCarInput(car, in)
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, exitWithError("carService.CreateCar", translateStoreError(err), "brandID", car.BrandID)
	}

	logger.ExitMethod("carService.CreateCar", "carID", car.ID)
	return car, nil
}

func (s *carService) UpdateCar(ctx context.Context, id int64, in CarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.UpdateCar", "carID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("carService.UpdateCar", err, "carID", id)
	}

	normalizeCarInput(&in)
	if err := s.checkCarInput(in); err != nil {
		return nil, exitWithError("carService.UpdateCar", err, "carID", id)
	}

	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("carService.UpdateCar", translateStoreError(err), "carID", id)
	}
	if car == nil {
		return nil, exitWithError("carService.UpdateCar", domain.NotFound("car %d not found", id), "carID", id)
	}

	applyCarInput(car, in)
	updated, err := s.carRepo.Update(ctx, car)
	if err != nil {
		return nil, exitWithError("carService.UpdateCar", translateStoreError(err), "carID", id)
	}
	if updated == nil {
		return nil, exitWithError("carService.UpdateCar", domain.NotFound("car %d not found", id), "carID", id)
	}

	logger.ExitMethod("carService.UpdateCar", "carID", id)
	return updated, nil
}

func (s *carService) DeleteCar(ctx context.Context, id int64) (*domain.Car, error) {
	logger.EnterMethod("carService.DeleteCar", "carID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("carService.DeleteCar", err, "carID", id)
	}

	deleted, err := s.carRepo.Delete(ctx, id)
	if err != nil {
		if cv, ok := repository.AsConstraintViolation(err); ok && cv.Kind == repository.ConstraintForeignKey {
			err = domain.Conflict("car %d has rentals and cannot be deleted", id).Wrap(err)
		}
		return nil, exitWithError("carService.DeleteCar", translateStoreError(err), "carID", id)
	}
	if deleted == nil {
		return nil, exitWithError("carService.DeleteCar", domain.NotFound("car %d not found", id), "carID", id)
	}

	logger.ExitMethod("carService.DeleteCar", "carID", id)
	return deleted, nil
}

func normalizeCarInput(in *CarInput) {
	if in.Model != nil {
		model := strings.TrimSpace(*in.Model)
		in.Model = &model
	}
}

func (s *carService) checkCarInput(in CarInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if in.Year != nil {
		maxYear := s.now().Year() + 1
		if *in.Year < domain.MinCarYear || *in.Year > maxYear {
			return domain.InvalidArgument("year", "year must be between %d and %d", domain.MinCarYear, maxYear)
		}
	}
	if in.DailyPrice != nil {
		if err := checkMoney("daily_price", *in.DailyPrice); err != nil {
			return err
		}
	}
	return nil
}

func applyCarInput(car *domain.Car, in CarInput) {
	if in.BrandID != nil {
		car.BrandID = *in.BrandID
	}
	if in.Model != nil {
		car.Model = *in.Model
	}
	if in.Year != nil {
		car.Year = *in.Year
	}
	if in.DailyPrice != nil {
		car.DailyPrice = *in.DailyPrice
	}
	if in.Available != nil {
		car.Available = *in.Available
	}
}
