package repository

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// BillFilter filtros conjuntivos del reporte de ventas.
// From/To delimitan created_at como [From, To); nil en ambos no filtra por fecha.
// StaffID vacío no filtra por staff.
type BillFilter struct {
	From    *time.Time
	To      *time.Time
	StaffID string
}

// Matches indica si la factura cumple todos los filtros.
func (f BillFilter) Matches(b *entity.Bill) bool {
	if f.From != nil && b.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !b.CreatedAt.Before(*f.To) {
		return false
	}
	if f.StaffID != "" && b.StaffID != f.StaffID {
		return false
	}
	return true
}

// ReportRepository consultas de solo lectura para el dashboard.
type ReportRepository interface {
	// StockLevels devuelve (id, nombre, stock) de todo el catálogo ordenado por nombre ascendente.
	StockLevels(ctx context.Context) ([]entity.StockRow, error)
	// SalesRows devuelve las facturas filtradas con nombres resueltos,
	// ordenadas por created_at ascendente (desempate por id).
	SalesRows(ctx context.Context, filter BillFilter) ([]entity.SalesReportRow, error)
}
