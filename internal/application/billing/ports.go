package billing

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los repos
// de usuarios, catálogo y facturación. Si fn retorna error se hace rollback.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		medicineRepo repository.MedicineRepository,
		billRepo repository.BillRepository,
	) error) error
}

// Receipt datos completos de una factura para su representación gráfica.
type Receipt struct {
	Bill     *entity.Bill
	Staff    *entity.User
	Medicine *entity.Medicine
}

// ReceiptPDFGenerator genera el PDF del comprobante de venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *Receipt) ([]byte, error)
}

// SalesRecorder recibe cada venta confirmada (métricas). Puede ser nil.
type SalesRecorder interface {
	BillCreated(packagingType string, total decimal.Decimal)
}
