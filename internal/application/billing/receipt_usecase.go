package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una factura.
type ReceiptUseCase struct {
	billRepo     repository.BillRepository
	userRepo     repository.UserRepository
	medicineRepo repository.MedicineRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	medicineRepo repository.MedicineRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		billRepo:     billRepo,
		userRepo:     userRepo,
		medicineRepo: medicineRepo,
		generator:    generator,
	}
}

// DownloadReceiptPDF pueden descargarlo los admin y el staff que emitió la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - NotFoundError              si la factura no existe.
//   - ForbiddenError             si es staff y la factura es de otro.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, caller authz.Caller, billID string) (pdfBytes []byte, filename string, err error) {
	if err := authz.Require(caller, "download_receipt", authz.IsAdmin, authz.IsStaff); err != nil {
		return nil, "", err
	}

	bill, err := uc.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, "", domain.NotFound("factura", billID)
	}
	if !authz.IsAdmin(caller) && bill.StaffID != caller.UserID {
		return nil, "", domain.Forbidden("download_receipt")
	}

	// Las bajas de usuario y medicamento arrastran sus facturas: ambos deben existir.
	staff, err := uc.userRepo.GetByID(ctx, bill.StaffID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener staff: %w", err)
	}
	if staff == nil {
		return nil, "", domain.NotFound("factura", billID)
	}
	medicine, err := uc.medicineRepo.GetByID(ctx, bill.MedicineID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener medicamento: %w", err)
	}
	if medicine == nil {
		return nil, "", domain.NotFound("factura", billID)
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, &Receipt{Bill: bill, Staff: staff, Medicine: medicine})
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", bill.ID), nil
}
