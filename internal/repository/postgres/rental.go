package postgres

import (
	"context"
	"database/sql"
	"time"

	"car-rental-backend/internal/domain"
)

const rentalColumns = `id, user_id, car_id, start_date, end_date, total_price, status, created_at, updated_at`

type rentalRepository struct {
	g *gateway
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY id`
	return r.list(ctx, "rentals.list", query)
}

// ListByCar returns every rental of the car regardless of status, ordered by
// start date.
func (r *rentalRepository) ListByCar(ctx context.Context, carID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1 ORDER BY start_date, id`
	return r.list(ctx, "rentals.list_by_car", query, carID)
}

func (r *rentalRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Rental, error) {
	rentals := []domain.Rental{}
	err := r.g.query(ctx, op, query, args, func(rows *sql.Rows) error {
		var rt domain.Rental
		if err := rows.Scan(scanRentalDest(&rt)...); err != nil {
			return err
		}
		rentals = append(rentals, rt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	found, err := r.g.queryRow(ctx, "rentals.get", query, []any{id}, scanRentalDest(rt)...)
	if err != nil || !found {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (user_id, car_id, start_date, end_date, total_price, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	_, err := r.g.queryRow(ctx, "rentals.create", query,
		[]any{rt.UserID, rt.CarID, rt.StartDate, rt.EndDate, rt.TotalPrice, rt.Status},
		&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	return err
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) (*domain.Rental, error) {
	updatedAt := rt.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	updated := &domain.Rental{}
	query := `UPDATE rentals
	          SET user_id = $1, car_id = $2, start_date = $3, end_date = $4, total_price = $5, status = $6, updated_at = $7
	          WHERE id = $8 RETURNING ` + rentalColumns
	found, err := r.g.queryRow(ctx, "rentals.update", query,
		[]any{rt.UserID, rt.CarID, rt.StartDate, rt.EndDate, rt.TotalPrice, rt.Status, updatedAt, rt.ID},
		scanRentalDest(updated)...)
	if err != nil || !found {
		return nil, err
	}
	return updated, nil
}

func (r *rentalRepository) Delete(ctx context.Context, id int64) (*domain.Rental, error) {
	deleted := &domain.Rental{}
	query := `DELETE FROM rentals WHERE id = $1 RETURNING ` + rentalColumns
	found, err := r.g.queryRow(ctx, "rentals.delete", query, []any{id}, scanRentalDest(deleted)...)
	if err != nil || !found {
		return nil, err
	}
	return deleted, nil
}

func scanRentalDest(rt *domain.Rental) []any {
	return []any{&rt.ID, &rt.UserID, &rt.CarID, &rt.StartDate, &rt.EndDate, &rt.TotalPrice, &rt.Status, &rt.CreatedAt, &rt.UpdatedAt}
}
