package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PackagingType forma en que se vende una unidad del medicamento.
type PackagingType string

const (
	PackagingSingle PackagingType = "single"
	PackagingStrip  PackagingType = "strip"
	PackagingPack   PackagingType = "pack"
	PackagingBox    PackagingType = "box"
)

// Valid indica si p pertenece al catálogo cerrado de empaques.
func (p PackagingType) Valid() bool {
	switch p {
	case PackagingSingle, PackagingStrip, PackagingPack, PackagingBox:
		return true
	}
	return false
}

func (p PackagingType) String() string { return string(p) }

// Rango de las columnas INTEGER de stock y cantidad. El stock no exige ser >= 0.
const (
	MinStock    = math.MinInt32
	MaxStock    = math.MaxInt32
	MaxQuantity = math.MaxInt32
)

// ExpiryDateLayout formato de fecha de vencimiento en la API y en la base de datos.
const ExpiryDateLayout = "2006-01-02"

// Medicine entrada del catálogo. Name es único (lo garantiza el store).
// Stock es informativo: la facturación no lo descuenta.
type Medicine struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Stock         int
	ExpiryDate    time.Time // solo fecha
	PackagingType PackagingType
	Price         decimal.Decimal // precio unitario, 2 decimales
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
