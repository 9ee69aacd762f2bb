package postgres

import (
	"context"
	"database/sql"
	"time"

	"car-rental-backend/internal/domain"
)

const userColumns = `id, name, email, phone, created_at, updated_at`

type userRepository struct {
	g *gateway
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	users := []domain.User{}
	err := r.g.query(ctx, "users.list", query, nil, func(rows *sql.Rows) error {
		var u domain.User
		if err := rows.Scan(scanUserDest(&u)...); err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	found, err := r.g.queryRow(ctx, "users.get", query, []any{id}, scanUserDest(u)...)
	if err != nil || !found {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	_, err := r.g.queryRow(ctx, "users.create", query, []any{u.Name, u.Email, u.Phone},
		&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	updated := &domain.User{}
	query := `UPDATE users SET name = $1, email = $2, phone = $3, updated_at = $4
	          WHERE id = $5 RETURNING ` + userColumns
	found, err := r.g.queryRow(ctx, "users.update", query,
		[]any{u.Name, u.Email, u.Phone, updatedAt, u.ID}, scanUserDest(updated)...)
	if err != nil || !found {
		return nil, err
	}
	return updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	deleted := &domain.User{}
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
	found, err := r.g.queryRow(ctx, "users.delete", query, []any{id}, scanUserDest(deleted)...)
	if err != nil || !found {
		return nil, err
	}
	return deleted, nil
}

func scanUserDest(u *domain.User) []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt}
}
