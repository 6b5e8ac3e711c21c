package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	domainbilling "github.com/jhoicas/farmacia-api/internal/domain/billing"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/jhoicas/farmacia-api/internal/application/billing")

// CreateBillUseCase registra ventas de mostrador. El staff de la factura es siempre el
// llamador autenticado y el total lo calcula el servidor a partir del precio vigente.
type CreateBillUseCase struct {
	txRunner BillingTxRunner
	billRepo repository.BillRepository
	userRepo repository.UserRepository
	recorder SalesRecorder
}

// NewCreateBillUseCase construye el caso de uso. recorder puede ser nil.
func NewCreateBillUseCase(
	txRunner BillingTxRunner,
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	recorder SalesRecorder,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner: txRunner,
		billRepo: billRepo,
		userRepo: userRepo,
		recorder: recorder,
	}
}

// CreateBill valida y persiste una factura en una sola transacción:
//  1. el llamador debe ser staff;
//  2. el medicamento debe existir (se lee con bloqueo compartido);
//  3. el tipo de empaque debe coincidir con el del medicamento;
//  4. la cantidad debe ser positiva;
//  5. total = precio * cantidad, redondeado a 2 decimales.
//
// Ante cualquier error no se escribe nada.
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, caller authz.Caller, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	ctx, span := tracer.Start(ctx, "billing.CreateBill")
	defer span.End()
	span.SetAttributes(
		attribute.String("bill.medicine_id", in.MedicineID),
		attribute.Int("bill.quantity", in.Quantity),
		attribute.String("bill.packaging_type", in.PackagingType),
	)

	resp, err := uc.createBill(ctx, caller, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("bill.id", resp.ID))
	if uc.recorder != nil {
		uc.recorder.BillCreated(resp.PackagingType, resp.TotalPrice.Decimal)
	}
	return resp, nil
}

func (uc *CreateBillUseCase) createBill(ctx context.Context, caller authz.Caller, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := authz.Require(caller, "create_bill", authz.IsStaff); err != nil {
		return nil, err
	}
	medicineID := strings.TrimSpace(in.MedicineID)
	if medicineID == "" {
		return nil, domain.Invalid("medicine_id", "medicine_id es requerido")
	}

	var bill *entity.Bill
	var staff *entity.User
	err := uc.txRunner.RunBilling(ctx, func(
		userRepo repository.UserRepository,
		medicineRepo repository.MedicineRepository,
		billRepo repository.BillRepository,
	) error {
		var err error
		// El token puede sobrevivir a la baja del usuario.
		staff, err = userRepo.GetByID(ctx, caller.UserID)
		if err != nil {
			return fmt.Errorf("billing: obtener staff: %w", err)
		}
		if staff == nil {
			return domain.ErrUnauthenticated
		}
		// El rol vigente manda sobre el del token: un staff degradado deja de facturar.
		if staff.Role != entity.RoleStaff {
			return domain.Forbidden("create_bill")
		}

		medicine, err := medicineRepo.GetByIDForShare(ctx, medicineID)
		if err != nil {
			return fmt.Errorf("billing: obtener medicamento: %w", err)
		}
		if medicine == nil {
			return domain.Invalid("medicine_id", "medicamento no encontrado")
		}
		packaging := entity.PackagingType(in.PackagingType)
		if packaging != medicine.PackagingType {
			return domain.Invalid("packaging_type",
				fmt.Sprintf("tipo de empaque inválido: el medicamento se vende como %s", medicine.PackagingType))
		}
		if in.Quantity <= 0 {
			return domain.Invalid("quantity", "quantity debe ser mayor que cero")
		}
		if in.Quantity > entity.MaxQuantity {
			return domain.Invalid("quantity", "quantity excede el máximo permitido")
		}
		total := domainbilling.TotalPrice(medicine.Price, in.Quantity)
		if total.GreaterThanOrEqual(domainbilling.MaxTotal) {
			return domain.Invalid("quantity", "el total de la venta excede el máximo permitido")
		}

		bill = &entity.Bill{
			ID:            uuid.New().String(),
			StaffID:       staff.ID,
			MedicineID:    medicine.ID,
			Quantity:      in.Quantity,
			PackagingType: packaging,
			TotalPrice:    total,
			CreatedAt:     time.Now().UTC(),
		}
		if err := billRepo.Create(ctx, bill); err != nil {
			return fmt.Errorf("billing: guardar factura: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, staff), nil
}

// GetBill devuelve una factura por ID (solo admin).
func (uc *CreateBillUseCase) GetBill(ctx context.Context, caller authz.Caller, id string) (*dto.BillResponse, error) {
	if err := authz.Require(caller, "get_bill", authz.IsAdmin); err != nil {
		return nil, err
	}
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, domain.NotFound("factura", id)
	}
	staff, err := uc.userRepo.GetByID(ctx, bill.StaffID)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener staff: %w", err)
	}
	return toBillResponse(bill, staff), nil
}

func toBillResponse(b *entity.Bill, staff *entity.User) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:            b.ID,
		Staff:         dto.StaffSummary{ID: b.StaffID},
		MedicineID:    b.MedicineID,
		Quantity:      b.Quantity,
		PackagingType: b.PackagingType.String(),
		TotalPrice:    dto.NewMoney(b.TotalPrice),
		CreatedAt:     b.CreatedAt,
	}
	if staff != nil {
		resp.Staff.Username = staff.Username
		resp.Staff.FullName = staff.FullName
		resp.Staff.Role = staff.Role.String()
	}
	return resp
}
