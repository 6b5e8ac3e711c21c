package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMedicineRequest entrada para crear un medicamento.
// ExpiryDate en formato YYYY-MM-DD.
type CreateMedicineRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Stock         int             `json:"stock"`
	ExpiryDate    string          `json:"expiry_date"`
	PackagingType string          `json:"packaging_type"`
	Price         decimal.Decimal `json:"price"`
}

// UpdateMedicineRequest actualización parcial del medicamento.
type UpdateMedicineRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Stock         *int             `json:"stock"`
	ExpiryDate    *string          `json:"expiry_date"`
	PackagingType *string          `json:"packaging_type"`
	Price         *decimal.Decimal `json:"price"`
}

// ListMedicinesRequest filtros del listado del catálogo.
type ListMedicinesRequest struct {
	PageRequest
	Category string `query:"category"`
	Search   string `query:"search"`
}

// MedicineResponse salida de un medicamento.
type MedicineResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Stock         int       `json:"stock"`
	ExpiryDate    string    `json:"expiry_date"`
	PackagingType string    `json:"packaging_type"`
	Price         Money     `json:"price" swaggertype:"string" example:"12.50"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MedicineListResponse lista paginada de medicamentos.
type MedicineListResponse struct {
	Items []MedicineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
