package dto

import "time"

// StockItemDTO fila del reporte de stock.
type StockItemDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// SalesReportRequest filtros de GET /api/dashboard/reports.
// StartDate y EndDate (YYYY-MM-DD, inclusivos) solo aplican si vienen ambos.
type SalesReportRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	StaffID   string `query:"staff_id"`
}

// SalesReportItemDTO factura proyectada con nombres resueltos (sin llaves foráneas).
type SalesReportItemDTO struct {
	ID            string    `json:"id"`
	StaffName     string    `json:"staff_name"`
	MedicineName  string    `json:"medicine_name"`
	Quantity      int       `json:"quantity"`
	PackagingType string    `json:"packaging_type"`
	TotalPrice    Money     `json:"total_price" swaggertype:"string" example:"12.50"`
	CreatedAt     time.Time `json:"created_at"`
}
