package service

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type rentalService struct {
	uow        repository.UnitOfWork
	rentalRepo repository.RentalRepository
	now        func() time.Time
}

// NewRentalService builds the rental lifecycle service. Writes run through
// uow so that availability checks and the write share one transaction.
func NewRentalService(uow repository.UnitOfWork, rentalRepo repository.RentalRepository, opts ...Option) RentalService {
	o := buildOptions(opts)
	return &rentalService{
		uow:        uow,
		rentalRepo: rentalRepo,
		now:        o.now,
	}
}

// rentalPatch holds the parsed, format-checked fields of a RentalInput.
type rentalPatch struct {
	userID *int64
	carID  *int64
	start  *domain.Date
	end    *domain.Date
	price  *decimal.Decimal
	status *domain.RentalStatus
}

func parseRentalInput(in RentalInput) (rentalPatch, error) {
	if err := checkStruct(in); err != nil {
		return rentalPatch{}, err
	}
	p := rentalPatch{userID: in.UserID, carID: in.CarID, price: in.TotalPrice, status: in.Status}
	if in.StartDate != nil {
		d, err := domain.ParseDate(*in.StartDate)
		if err != nil {
			return rentalPatch{}, domain.InvalidArgument("start_date", "start_date must be a date in YYYY-MM-DD format")
		}
		p.start = &d
	}
	if in.EndDate != nil {
		d, err := domain.ParseDate(*in.EndDate)
		if err != nil {
			return rentalPatch{}, domain.InvalidArgument("end_date", "end_date must be a date in YYYY-MM-DD format")
		}
		p.end = &d
	}
	if p.price != nil {
		if err := checkMoney("total_price", *p.price); err != nil {
			return rentalPatch{}, err
		}
	}
	return p, nil
}

// apply overwrites the fields of r that are present in the patch.
func (p rentalPatch) apply(r *domain.Rental) {
	if p.userID != nil {
		r.UserID = *p.userID
	}
	if p.carID != nil {
		r.CarID = *p.carID
	}
	if p.start != nil {
		r.StartDate = *p.start
	}
	if p.end != nil {
		r.EndDate = *p.end
	}
	if p.price != nil {
		r.TotalPrice = *p.price
	}
	if p.status != nil {
		r.Status = *p.status
	}
}

func checkPeriod(start, end domain.Date) error {
	if !start.Before(end) {
		return domain.InvalidArgument("end_date", "end_date must be after start_date")
	}
	return nil
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	logger.EnterMethod("rentalService.ListRentals")
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, exitWithError("rentalService.ListRentals", translateStoreError(err))
	}
	logger.ExitMethod("rentalService.ListRentals", "count", len(rentals))
	return rentals, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.GetRental", "rentalID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("rentalService.GetRental", err, "rentalID", id)
	}
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("rentalService.GetRental", translateStoreError(err), "rentalID", id)
	}
	if rental == nil {
		return nil, exitWithError("rentalService.GetRental", domain.NotFound("rental %d not found", id), "rentalID", id)
	}
	logger.ExitMethod("rentalService.GetRental", "rentalID", id)
	return rental, nil
}

func (s *rentalService) CreateRental(ctx context.Context, in RentalInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental")

	rental, err := s.newRental(in)
	if err != nil {
		return nil, exitWithError("rentalService.CreateRental", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := checkUserExists(ctx, repos.Users, rental.UserID); err != nil {
			return err
		}
		if err := lockCar(ctx, repos.Cars, rental.CarID); err != nil {
			return err
		}
		if err := ensureAvailable(ctx, repos.Rentals, rental); err != nil {
			return err
		}
		return repos.Rentals.Create(ctx, rental)
	})
	if err != nil {
		return nil, exitWithError("rentalService.CreateRental", translateStoreError(err),
			"userID", rental.UserID, "carID", rental.CarID)
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rental.ID, "carID", rental.CarID)
	return rental, nil
}

// newRental validates a create request and builds the rental to insert.
func (s *rentalService) newRental(in RentalInput) (*domain.Rental, error) {
	if err := requireFields(
		field("user_id", in.UserID),
		field("car_id", in.CarID),
		field("start_date", in.StartDate),
		field("end_date", in.EndDate),
		field("total_price", in.TotalPrice),
	); err != nil {
		return nil, err
	}

	p, err := parseRentalInput(in)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	if p.start.Before(today) {
		return nil, domain.InvalidArgument("start_date", "start_date cannot be in the past")
	}
	if err := checkPeriod(*p.start, *p.end); err != nil {
		return nil, err
	}

	rental := &domain.Rental{Status: domain.RentalStatusPending}
	p.apply(rental)
	return rental, nil
}

func (s *rentalService) UpdateRental(ctx context.Context, id int64, in RentalInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.UpdateRental", "rentalID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("rentalService.UpdateRental", err, "rentalID", id)
	}
	p, err := parseRentalInput(in)
	if err != nil {
		return nil, exitWithError("rentalService.UpdateRental", err, "rentalID", id)
	}

	var updated *domain.Rental
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		current, err := repos.Rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("rental %d not found", id)
		}

		merged := *current
		p.apply(&merged)
		if err := checkPeriod(merged.StartDate, merged.EndDate); err != nil {
			return err
		}
		if merged.UserID != current.UserID {
			if err := checkUserExists(ctx, repos.Users, merged.UserID); err != nil {
				return err
			}
		}
		if err := lockCar(ctx, repos.Cars, merged.CarID); err != nil {
			return err
		}
		if err := ensureAvailable(ctx, repos.Rentals, &merged); err != nil {
			return err
		}

		merged.UpdatedAt = s.now().UTC()
		updated, err = repos.Rentals.Update(ctx, &merged)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.NotFound("rental %d not found", id)
		}
		return nil
	})
	if err != nil {
		return nil, exitWithError("rentalService.UpdateRental", translateStoreError(err), "rentalID", id)
	}

	logger.ExitMethod("rentalService.UpdateRental", "rentalID", id, "status", updated.Status)
	return updated, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, id int64) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.DeleteRental", "rentalID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("rentalService.DeleteRental", err, "rentalID", id)
	}

	var deleted *domain.Rental
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		current, err := repos.Rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("rental %d not found", id)
		}
		if current.Status == domain.RentalStatusActive {
			return domain.Conflict("cannot delete an active rental")
		}
		deleted, err = repos.Rentals.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return domain.NotFound("rental %d not found", id)
		}
		return nil
	})
	if err != nil {
		return nil, exitWithError("rentalService.DeleteRental", translateStoreError(err), "rentalID", id)
	}

	logger.ExitMethod("rentalService.DeleteRental", "rentalID", id)
	return deleted, nil
}

func checkUserExists(ctx context.Context, users repository.UserRepository, id int64) error {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.InvalidReference("user_id", "user %d does not exist", id)
	}
	return nil
}

// lockCar checks that the car exists and holds its row lock for the rest of
// the transaction, serialising bookings of the same car.
func lockCar(ctx context.Context, cars repository.CarRepository, id int64) error {
	car, err := cars.GetByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if car == nil {
		return domain.InvalidReference("car_id", "car %d does not exist", id)
	}
	return nil
}

// ensureAvailable rejects candidate when it conflicts with any other
// blocking rental of the same car.
func ensureAvailable(ctx context.Context, rentals repository.RentalRepository, candidate *domain.Rental) error {
	if !candidate.Status.Blocking() {
		return nil
	}
	existing, err := rentals.ListByCar(ctx, candidate.CarID)
	if err != nil {
		return err
	}
	for i := range existing {
		if candidate.ConflictsWith(&existing[i]) {
			return domain.Conflict("car is not available from %s to %s", candidate.StartDate, candidate.EndDate)
		}
	}
	return nil
}
