package dto

import "time"

// CreateBillRequest body para POST /api/billing.
// No acepta staff ni total_price: ambos los asigna el servidor.
type CreateBillRequest struct {
	MedicineID    string `json:"medicine_id"`
	Quantity      int    `json:"quantity"`
	PackagingType string `json:"packaging_type"`
}

// BillResponse factura persistida.
type BillResponse struct {
	ID            string       `json:"id"`
	Staff         StaffSummary `json:"staff"`
	MedicineID    string       `json:"medicine_id"`
	Quantity      int          `json:"quantity"`
	PackagingType string       `json:"packaging_type"`
	TotalPrice    Money        `json:"total_price" swaggertype:"string" example:"12.50"`
	CreatedAt     time.Time    `json:"created_at"`
}
