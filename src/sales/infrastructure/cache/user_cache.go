package cache

import (
	"context"
	"sync"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// UserCache es un cache read-through de usuarios sobre el UserRepository
// Los roles de usuario cambian rara vez; evita un round-trip a la DB de
// usuarios en cada creación/actualización de venta
type UserCache struct {
	repo  port.UserRepository
	users map[uuid.UUID]entity.User
	mu    sync.RWMutex
}

// NewUserCache crea un nuevo cache de usuarios
func NewUserCache(repo port.UserRepository) *UserCache {
	return &UserCache{
		repo:  repo,
		users: make(map[uuid.UUID]entity.User),
	}
}

// GetByID retorna el usuario desde el cache, o lo carga desde el repositorio
func (c *UserCache) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	c.mu.RLock()
	user, ok := c.users[id]
	c.mu.RUnlock()
	if ok {
		return &user, nil
	}

	loaded, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.users[id] = *loaded
	c.mu.Unlock()

	return loaded, nil
}
