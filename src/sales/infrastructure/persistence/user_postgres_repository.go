package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// UserPostgresRepository implementa UserRepository usando PostgreSQL
// Solo lookup: los usuarios los administra otro servicio
type UserPostgresRepository struct {
	db *sql.DB
}

// NewUserPostgresRepository crea una nueva instancia del repositorio
func NewUserPostgresRepository(db *sql.DB) port.UserRepository {
	return &UserPostgresRepository{db: db}
}

// GetByID retorna el usuario por id
func (r *UserPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE id = $1
	`

	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	return user, nil
}
