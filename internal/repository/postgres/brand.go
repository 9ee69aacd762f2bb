package postgres

import (
	"context"
	"database/sql"

	"car-rental-backend/internal/domain"
)

type brandRepository struct {
	g *gateway
}

func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name FROM brands ORDER BY name`
	brands := []domain.Brand{}
	err := r.g.query(ctx, "brands.list", query, nil, func(rows *sql.Rows) error {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return err
		}
		brands = append(brands, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	b := &domain.Brand{}
	query := `SELECT id, name FROM brands WHERE id = $1`
	found, err := r.g.queryRow(ctx, "brands.get", query, []any{id}, &b.ID, &b.Name)
	if err != nil || !found {
		return nil, err
	}
	return b, nil
}
