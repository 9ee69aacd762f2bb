//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/migrations"
	"car-rental-backend/internal/repository"
	"car-rental-backend/internal/repository/postgres"

	"github.com/docker/go-connections/nat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "rentals",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://test:test@%s:%s/rentals?sslmode=disable", host, port.Port())
		}),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/rentals?sslmode=disable", host, port.Port())

	require.NoError(t, migrations.Up(dsn))

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewStore(db)
}

func seedCar(t *testing.T, store *postgres.Store) (*domain.User, *domain.Car) {
	t.Helper()
	ctx := context.Background()

	brands, err := store.BrandRepository.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brands)

	user := &domain.User{Name: "Jan Kowalski", Email: "jan@example.com"}
	require.NoError(t, store.UserRepository.Create(ctx, user))

	car := &domain.Car{BrandID: brands[0].ID, Model: "Corolla", Year: 2021, DailyPrice: decimal.NewFromInt(150), Available: true}
	require.NoError(t, store.CarRepository.Create(ctx, car))
	return user, car
}

func TestIntegration_ExclusionConstraint(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	user, car := seedCar(t, store)

	booking := func(start, end domain.Date, status domain.RentalStatus) *domain.Rental {
		return &domain.Rental{UserID: user.ID, CarID: car.ID, StartDate: start, EndDate: end,
			TotalPrice: decimal.NewFromInt(300), Status: status}
	}

	require.NoError(t, store.RentalRepository.Create(ctx,
		booking(domain.NewDate(2030, 6, 10), domain.NewDate(2030, 6, 15), domain.RentalStatusPending)))

	t.Run("OverlapRejected", func(t *testing.T) {
		err := store.RentalRepository.Create(ctx,
			booking(domain.NewDate(2030, 6, 12), domain.NewDate(2030, 6, 20), domain.RentalStatusActive))
		cv, ok := repository.AsConstraintViolation(err)
		require.True(t, ok, "expected constraint violation, got %v", err)
		assert.Equal(t, repository.ConstraintExclusion, cv.Kind)
	})

	t.Run("TouchingAllowed", func(t *testing.T) {
		assert.NoError(t, store.RentalRepository.Create(ctx,
			booking(domain.NewDate(2030, 6, 15), domain.NewDate(2030, 6, 18), domain.RentalStatusPending)))
	})

	t.Run("CancelledIgnored", func(t *testing.T) {
		assert.NoError(t, store.RentalRepository.Create(ctx,
			booking(domain.NewDate(2030, 6, 10), domain.NewDate(2030, 6, 15), domain.RentalStatusCancelled)))
	})

	t.Run("UnknownCar", func(t *testing.T) {
		r := booking(domain.NewDate(2031, 1, 1), domain.NewDate(2031, 1, 2), domain.RentalStatusPending)
		r.CarID = 999999
		err := store.RentalRepository.Create(ctx, r)
		cv, ok := repository.AsConstraintViolation(err)
		require.True(t, ok)
		assert.Equal(t, repository.ConstraintForeignKey, cv.Kind)
		assert.Equal(t, "car_id", cv.Field)
	})

	t.Run("DeleteReferencedCar", func(t *testing.T) {
		_, err := store.CarRepository.Delete(ctx, car.ID)
		cv, ok := repository.AsConstraintViolation(err)
		require.True(t, ok)
		assert.Equal(t, repository.ConstraintForeignKey, cv.Kind)
	})
}

func TestIntegration_ConcurrentBookings(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	user, car := seedCar(t, store)

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
				if _, err := repos.Cars.GetByIDForUpdate(ctx, car.ID); err != nil {
					return err
				}
				candidate := &domain.Rental{UserID: user.ID, CarID: car.ID,
					StartDate: domain.NewDate(2030, 7, 1+i%3), EndDate: domain.NewDate(2030, 7, 10),
					TotalPrice: decimal.NewFromInt(900), Status: domain.RentalStatusPending}
				existing, err := repos.Rentals.ListByCar(ctx, car.ID)
				if err != nil {
					return err
				}
				for j := range existing {
					if candidate.ConflictsWith(&existing[j]) {
						return fmt.Errorf("car not available")
					}
				}
				return repos.Rentals.Create(ctx, candidate)
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	rentals, err := store.RentalRepository.ListByCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}
