// Package reporting expone los reportes del dashboard de administración.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DateLayout formato de start_date / end_date.
const DateLayout = "2006-01-02"

var tracer = otel.Tracer("github.com/jhoicas/farmacia-api/internal/application/reporting")

// ReportUseCase reportes de stock y ventas. Solo admin.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// StockReport devuelve (id, nombre, stock) de cada medicamento, ordenado por nombre.
func (uc *ReportUseCase) StockReport(ctx context.Context, caller authz.Caller) ([]dto.StockItemDTO, error) {
	if err := authz.Require(caller, "stock_report", authz.IsAdmin); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "reporting.StockReport")
	defer span.End()

	rows, err := uc.repo.StockLevels(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("reporting: stock: %w", err)
	}
	out := make([]dto.StockItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockItemDTO{ID: r.ID, Name: r.Name, Stock: r.Stock})
	}
	span.SetAttributes(attribute.Int("report.rows", len(out)))
	return out, nil
}

// SalesReport devuelve las facturas que cumplen todos los filtros presentes.
// El rango de fechas es inclusivo y solo se aplica si vienen ambos extremos.
func (uc *ReportUseCase) SalesReport(ctx context.Context, caller authz.Caller, in dto.SalesReportRequest) ([]dto.SalesReportItemDTO, error) {
	if err := authz.Require(caller, "sales_report", authz.IsAdmin); err != nil {
		return nil, err
	}
	filter, err := ParseSalesFilter(in)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "reporting.SalesReport")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("report.date_range", filter.From != nil),
		attribute.String("report.staff_id", filter.StaffID),
	)

	rows, err := uc.repo.SalesRows(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("reporting: ventas: %w", err)
	}
	out := make([]dto.SalesReportItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportItemDTO{
			ID:            r.ID,
			StaffName:     r.StaffName,
			MedicineName:  r.MedicineName,
			Quantity:      r.Quantity,
			PackagingType: r.PackagingType.String(),
			TotalPrice:    dto.NewMoney(r.TotalPrice),
			CreatedAt:     r.CreatedAt,
		})
	}
	span.SetAttributes(attribute.Int("report.rows", len(out)))
	return out, nil
}

// ParseSalesFilter convierte los parámetros de consulta en un BillFilter.
// Las fechas se interpretan en UTC: [start 00:00, end+1 día 00:00).
func ParseSalesFilter(in dto.SalesReportRequest) (repository.BillFilter, error) {
	var f repository.BillFilter
	startRaw, endRaw := strings.TrimSpace(in.StartDate), strings.TrimSpace(in.EndDate)
	if startRaw != "" && endRaw != "" {
		start, err := time.Parse(DateLayout, startRaw)
		if err != nil {
			return f, domain.Invalid("start_date", "formato de fecha inválido, use YYYY-MM-DD")
		}
		end, err := time.Parse(DateLayout, endRaw)
		if err != nil {
			return f, domain.Invalid("end_date", "formato de fecha inválido, use YYYY-MM-DD")
		}
		if end.Before(start) {
			return f, domain.Invalid("end_date", "end_date no puede ser anterior a start_date")
		}
		to := end.AddDate(0, 0, 1)
		f.From, f.To = &start, &to
	}
	if staffID := strings.TrimSpace(in.StaffID); staffID != "" {
		if _, err := uuid.Parse(staffID); err != nil {
			return f, domain.Invalid("staff_id", "staff_id inválido")
		}
		f.StaffID = staffID
	}
	return f, nil
}
