package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo persistencia de facturas. Solo inserta y lee: las facturas no se modifican.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la factura.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (id, staff_id, medicine_id, quantity, packaging_type, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.StaffID, b.MedicineID, b.Quantity, string(b.PackagingType), b.TotalPrice, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `
		SELECT id, staff_id, medicine_id, quantity, packaging_type, total_price, created_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	var packaging string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.StaffID, &b.MedicineID, &b.Quantity, &packaging, &b.TotalPrice, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	b.PackagingType = entity.PackagingType(packaging)
	return &b, nil
}
