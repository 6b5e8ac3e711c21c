package repository

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// MedicineFilter criterios de listado del catálogo.
type MedicineFilter struct {
	Category string // coincidencia exacta, vacío no filtra
	Search   string // contenido en el nombre, sin distinguir mayúsculas
	Limit    int    // 0 no pagina
	Offset   int
}

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
// Los Get* devuelven (nil, nil) cuando el medicamento no existe.
type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	// GetByIDForShare lee el medicamento bloqueando la fila contra modificaciones
	// hasta el fin de la transacción en curso.
	GetByIDForShare(ctx context.Context, id string) (*entity.Medicine, error)
	GetByName(ctx context.Context, name string) (*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	List(ctx context.Context, filter MedicineFilter) ([]*entity.Medicine, error)
	// Delete elimina el medicamento y, en cascada, sus facturas.
	Delete(ctx context.Context, id string) error
}
