package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockLevels stock actual de todo el catálogo por nombre ascendente.
func (r *ReportRepo) StockLevels(ctx context.Context) ([]entity.StockRow, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, stock FROM medicines ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("report.StockLevels: %w", err)
	}
	defer rows.Close()

	results := []entity.StockRow{}
	for rows.Next() {
		var row entity.StockRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Stock); err != nil {
			return nil, fmt.Errorf("report.StockLevels scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesRows facturas con el username del staff y el nombre del medicamento resueltos.
// Cada filtro nulo se ignora; los presentes se combinan con AND.
func (r *ReportRepo) SalesRows(ctx context.Context, filter repository.BillFilter) ([]entity.SalesReportRow, error) {
	const query = `
	SELECT
	    b.id,
	    u.username,
	    m.name,
	    b.quantity,
	    b.packaging_type,
	    b.total_price,
	    b.created_at
	FROM bills b
	JOIN users     u ON u.id = b.staff_id
	JOIN medicines m ON m.id = b.medicine_id
	WHERE ($1::timestamptz IS NULL OR b.created_at >= $1)
	  AND ($2::timestamptz IS NULL OR b.created_at <  $2)
	  AND ($3::uuid        IS NULL OR b.staff_id    = $3)
	ORDER BY b.created_at ASC, b.id ASC`

	rows, err := r.q.Query(ctx, query, filter.From, filter.To, nullIfEmpty(filter.StaffID))
	if err != nil {
		return nil, fmt.Errorf("report.SalesRows: %w", err)
	}
	defer rows.Close()

	results := []entity.SalesReportRow{}
	for rows.Next() {
		var row entity.SalesReportRow
		var packaging string
		if err := rows.Scan(
			&row.ID,
			&row.StaffName,
			&row.MedicineName,
			&row.Quantity,
			&packaging,
			&row.TotalPrice,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("report.SalesRows scan: %w", err)
		}
		row.PackagingType = entity.PackagingType(packaging)
		results = append(results, row)
	}
	return results, rows.Err()
}
