package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios. Role vacío no filtra.
type UserFilter struct {
	Role   entity.Role
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	// Delete elimina el usuario y, en cascada, sus facturas.
	Delete(ctx context.Context, id string) error
}
