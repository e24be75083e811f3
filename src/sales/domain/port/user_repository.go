package port

import (
	"context"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// UserRepository define el contrato de lookup de usuarios (contexto externo)
type UserRepository interface {
	// GetByID retorna el usuario, o entity.ErrUserNotFound si no existe
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
