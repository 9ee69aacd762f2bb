package postgres

import (
	"context"
	"database/sql"

	"car-rental-backend/internal/domain"
)

const carColumns = `id, brand_id, model, year, daily_price, available`

type carRepository struct {
	g *gateway
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT c.id, c.brand_id, b.name, c.model, c.year, c.daily_price, c.available
	          FROM cars c JOIN brands b ON b.id = c.brand_id ORDER BY c.id`
	cars := []domain.Car{}
	err := r.g.query(ctx, "cars.list", query, nil, func(rows *sql.Rows) error {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.BrandID, &c.Brand, &c.Model, &c.Year, &c.DailyPrice, &c.Available); err != nil {
			return err
		}
		cars = append(cars, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT c.id, c.brand_id, b.name, c.model, c.year, c.daily_price, c.available
	          FROM cars c JOIN brands b ON b.id = c.brand_id WHERE c.id = $1`
	found, err := r.g.queryRow(ctx, "cars.get", query, []any{id},
		&c.ID, &c.BrandID, &c.Brand, &c.Model, &c.Year, &c.DailyPrice, &c.Available)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`
	found, err := r.g.queryRow(ctx, "cars.lock", query, []any{id}, scanCarDest(c)...)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `WITH c AS (
	              INSERT INTO cars (brand_id, model, year, daily_price, available)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id, brand_id)
	          SELECT c.id, b.name FROM c JOIN brands b ON b.id = c.brand_id`
	_, err := r.g.queryRow(ctx, "cars.create", query,
		[]any{c.BrandID, c.Model, c.Year, c.DailyPrice, c.Available}, &c.ID, &c.Brand)
	return err
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) (*domain.Car, error) {
	updated := &domain.Car{}
	query := `WITH c AS (
	              UPDATE cars SET brand_id = $1, model = $2, year = $3, daily_price = $4, available = $5
	              WHERE id = $6 RETURNING ` + carColumns + `)
	          SELECT c.id, c.brand_id, b.name, c.model, c.year, c.daily_price, c.available
	          FROM c JOIN brands b ON b.id = c.brand_id`
	found, err := r.g.queryRow(ctx, "cars.update", query,
		[]any{c.BrandID, c.Model, c.Year, c.DailyPrice, c.Available, c.ID},
		&updated.ID, &updated.BrandID, &updated.Brand, &updated.Model, &updated.Year, &updated.DailyPrice, &updated.Available)
	if err != nil || !found {
		return nil, err
	}
	return updated, nil
}

func (r *carRepository) Delete(ctx context.Context, id int64) (*domain.Car, error) {
	deleted := &domain.Car{}
	query := `DELETE FROM cars WHERE id = $1 RETURNING ` + carColumns
	found, err := r.g.queryRow(ctx, "cars.delete", query, []any{id}, scanCarDest(deleted)...)
	if err != nil || !found {
		return nil, err
	}
	return deleted, nil
}

func scanCarDest(c *domain.Car) []any {
	return []any{&c.ID, &c.BrandID, &c.Model, &c.Year, &c.DailyPrice, &c.Available}
}
