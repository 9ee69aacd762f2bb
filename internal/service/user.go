package service

import (
	"context"
	"strings"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository, opts ...Option) UserService {
	o := buildOptions(opts)
	return &userService{userRepo: userRepo, now: o.now}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	logger.EnterMethod("userService.ListUsers")
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, exitWithError("userService.ListUsers", translateStoreError(err))
	}
	logger.ExitMethod("userService.ListUsers", "count", len(users))
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	logger.EnterMethod("userService.GetUser", "userID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("userService.GetUser", err, "userID", id)
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("userService.GetUser", translateStoreError(err), "userID", id)
	}
	if user == nil {
		return nil, exitWithError("userService.GetUser", domain.NotFound("user %d not found", id), "userID", id)
	}
	logger.ExitMethod("userService.GetUser", "userID", id)
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*domain.User, error) {
	logger.EnterMethod("userService.CreateUser")

	normalizeUserInput(&in)
	if err := requireFields(field("name", in.Name), field("email", in.Email)); err != nil {
		return nil, exitWithError("userService.CreateUser", err)
	}
	if err := checkStruct(in); err != nil {
		return nil, exitWithError("userService.CreateUser", err)
	}

	user := &domain.User{}
	applyUserInput(user, in)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, exitWithError("userService.CreateUser", translateUserError(err))
	}

	logger.ExitMethod("userService.CreateUser", "userID", user.ID)
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, in UserInput) (*domain.User, error) {
	logger.EnterMethod("userService.UpdateUser", "userID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("userService.UpdateUser", err, "userID", id)
	}

	normalizeUserInput(&in)
	if in.Name == nil && in.Email == nil && in.Phone == nil {
		return nil, exitWithError("userService.UpdateUser",
			domain.InvalidArgument("", "at least one of name, email or phone must be provided"), "userID", id)
	}
	if err := checkStruct(in); err != nil {
		return nil, exitWithError("userService.UpdateUser", err, "userID", id)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("userService.UpdateUser", translateStoreError(err), "userID", id)
	}
	if user == nil {
		return nil, exitWithError("userService.UpdateUser", domain.NotFound("user %d not found", id), "userID", id)
	}

	applyUserInput(user, in)
	user.UpdatedAt = s.now().UTC()
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, exitWithError("userService.UpdateUser", translateUserError(err), "userID", id)
	}
	if updated == nil {
		return nil, exitWithError("userService.UpdateUser", domain.NotFound("user %d not found", id), "userID", id)
	}

	logger.ExitMethod("userService.UpdateUser", "userID", id)
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) (*domain.User, error) {
	logger.EnterMethod("userService.DeleteUser", "userID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("userService.DeleteUser", err, "userID", id)
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if cv, ok := repository.AsConstraintViolation(err); ok && cv.Kind == repository.ConstraintForeignKey {
			err = domain.Conflict("user %d has rentals and cannot be deleted", id).Wrap(err)
		}
		return nil, exitWithError("userService.DeleteUser", translateStoreError(err), "userID", id)
	}
	if deleted == nil {
		return nil, exitWithError("userService.DeleteUser", domain.NotFound("user %d not found", id), "userID", id)
	}

	logger.ExitMethod("userService.DeleteUser", "userID", id)
	return deleted, nil
}

func translateUserError(err error) error {
	if cv, ok := repository.AsConstraintViolation(err); ok && cv.Kind == repository.ConstraintUnique {
		return domain.Conflict("a user with this email already exists").Wrap(err)
	}
	return translateStoreError(err)
}

// normalizeUserInput trims every field and lower-cases the email. An empty
// phone clears the stored number.
func normalizeUserInput(in *UserInput) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &email
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		in.Phone = &phone
	}
}

func applyUserInput(user *domain.User, in UserInput) {
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		if *in.Phone == "" {
			user.Phone = nil
		} else {
			phone := *in.Phone
			user.Phone = &phone
		}
	}
}
