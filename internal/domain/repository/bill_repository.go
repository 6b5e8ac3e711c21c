package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para Bill.
// No expone Update ni Delete: una factura es inmutable una vez creada.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByID devuelve (nil, nil) si la factura no existe.
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
}
