package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill registro inmutable de una venta. Referencia (por ID) al staff que la emitió
// y al medicamento vendido; se elimina en cascada con cualquiera de los dos.
type Bill struct {
	ID            string
	StaffID       string
	MedicineID    string
	Quantity      int
	PackagingType PackagingType
	TotalPrice    decimal.Decimal // Price * Quantity, calculado en servidor
	CreatedAt     time.Time       // asignado una sola vez al crear
}

// SalesReportRow proyección de Bill para reportes: nombres resueltos, sin llaves foráneas.
type SalesReportRow struct {
	ID            string
	StaffName     string
	MedicineName  string
	Quantity      int
	PackagingType PackagingType
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
}

// StockRow proyección de Medicine para el reporte de stock.
type StockRow struct {
	ID    string
	Name  string
	Stock int
}
