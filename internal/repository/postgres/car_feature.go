package postgres

import (
	"context"
	"database/sql"

	"car-rental-backend/internal/domain"
)

type carFeatureRepository struct {
	g *gateway
}

func (r *carFeatureRepository) List(ctx context.Context) ([]domain.CarFeature, error) {
	query := `SELECT id, name, description, icon_url FROM car_features ORDER BY name`
	features := []domain.CarFeature{}
	err := r.g.query(ctx, "car_features.list", query, nil, func(rows *sql.Rows) error {
		var f domain.CarFeature
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.IconURL); err != nil {
			return err
		}
		features = append(features, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (r *carFeatureRepository) GetByID(ctx context.Context, id int64) (*domain.CarFeature, error) {
	f := &domain.CarFeature{}
	query := `SELECT id, name, description, icon_url FROM car_features WHERE id = $1`
	found, err := r.g.queryRow(ctx, "car_features.get", query, []any{id}, &f.ID, &f.Name, &f.Description, &f.IconURL)
	if err != nil || !found {
		return nil, err
	}
	return f, nil
}
