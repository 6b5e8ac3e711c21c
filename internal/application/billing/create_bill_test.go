package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

type fakeRecorder struct {
	mu    sync.Mutex
	count int
	total decimal.Decimal
}

func (r *fakeRecorder) BillCreated(_ string, total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.total = r.total.Add(total)
}

func newBillingUC(store *memstore.Store, rec billing.SalesRecorder) *billing.CreateBillUseCase {
	return billing.NewCreateBillUseCase(store, store.Bills(), store.Users(), rec)
}

func TestCreateBill_CalculaTotalYAsignaStaff(t *testing.T) {
	store := memstore.New()
	staff, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	rec := &fakeRecorder{}
	uc := newBillingUC(store, rec)

	out, err := uc.CreateBill(context.Background(), caller, dto.CreateBillRequest{
		MedicineID: med.ID, Quantity: 3, PackagingType: "strip",
	})
	require.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("37.50")), out.TotalPrice.String())
	assert.Equal(t, staff.ID, out.Staff.ID)
	assert.Equal(t, "ana", out.Staff.Username)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, 1, store.BillCount())
	assert.Equal(t, 1, rec.count)

	stored, err := store.Bills().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, staff.ID, stored.StaffID)
}

func TestCreateBill_Autorizacion(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	_, manager := store.AddUser("gestor", entity.RoleInventoryManager)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	uc := newBillingUC(store, nil)
	req := dto.CreateBillRequest{MedicineID: med.ID, Quantity: 1, PackagingType: "strip"}

	for _, caller := range []authz.Caller{admin, manager} {
		_, err := uc.CreateBill(context.Background(), caller, req)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
	_, err := uc.CreateBill(context.Background(), authz.Anonymous(), req)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 0, store.BillCount())
}

func TestCreateBill_Rechazos(t *testing.T) {
	store := memstore.New()
	_, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	caro := store.AddMedicine("Biológico", entity.PackagingBox, "99999999.99")
	uc := newBillingUC(store, nil)

	tests := []struct {
		name  string
		req   dto.CreateBillRequest
		field string
	}{
		{"medicamento inexistente", dto.CreateBillRequest{MedicineID: "00000000-0000-0000-0000-000000000000", Quantity: 1, PackagingType: "strip"}, "medicine_id"},
		{"sin medicamento", dto.CreateBillRequest{Quantity: 1, PackagingType: "strip"}, "medicine_id"},
		{"empaque distinto", dto.CreateBillRequest{MedicineID: med.ID, Quantity: 1, PackagingType: "box"}, "packaging_type"},
		{"empaque desconocido", dto.CreateBillRequest{MedicineID: med.ID, Quantity: 1, PackagingType: "bottle"}, "packaging_type"},
		{"cantidad cero", dto.CreateBillRequest{MedicineID: med.ID, Quantity: 0, PackagingType: "strip"}, "quantity"},
		{"cantidad negativa", dto.CreateBillRequest{MedicineID: med.ID, Quantity: -2, PackagingType: "strip"}, "quantity"},
		{"cantidad fuera de INTEGER", dto.CreateBillRequest{MedicineID: med.ID, Quantity: entity.MaxQuantity + 1, PackagingType: "strip"}, "quantity"},
		{"total excede NUMERIC(14,2)", dto.CreateBillRequest{MedicineID: caro.ID, Quantity: 10001, PackagingType: "box"}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateBill(context.Background(), caller, tt.req)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, 0, store.BillCount())
		})
	}
}

func TestCreateBill_RollbackSiFallaLaEscritura(t *testing.T) {
	store := memstore.New()
	_, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	store.FailBillCreate = true
	rec := &fakeRecorder{}
	uc := newBillingUC(store, rec)

	_, err := uc.CreateBill(context.Background(), caller, dto.CreateBillRequest{
		MedicineID: med.ID, Quantity: 1, PackagingType: "strip",
	})
	assert.ErrorIs(t, err, memstore.ErrInjected)
	assert.Equal(t, 0, store.BillCount())
	assert.Equal(t, 0, rec.count)
}

func TestCreateBill_StaffEliminado(t *testing.T) {
	store := memstore.New()
	staff, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	require.NoError(t, store.Users().Delete(context.Background(), staff.ID))
	uc := newBillingUC(store, nil)

	_, err := uc.CreateBill(context.Background(), caller, dto.CreateBillRequest{
		MedicineID: med.ID, Quantity: 1, PackagingType: "strip",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateBill_StaffDegradado(t *testing.T) {
	// el Caller conserva el rol del token, pero el usuario ya no es staff
	store := memstore.New()
	staff, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	staff.Role = entity.RoleInventoryManager
	require.NoError(t, store.Users().Update(context.Background(), staff))
	uc := newBillingUC(store, nil)

	_, err := uc.CreateBill(context.Background(), caller, dto.CreateBillRequest{
		MedicineID: med.ID, Quantity: 1, PackagingType: "strip",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, store.BillCount())
}

func TestCreateBill_TotalEnElLimite(t *testing.T) {
	store := memstore.New()
	_, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Biológico", entity.PackagingBox, "99999999.99")
	uc := newBillingUC(store, nil)

	out, err := uc.CreateBill(context.Background(), caller, dto.CreateBillRequest{
		MedicineID: med.ID, Quantity: 10000, PackagingType: "box",
	})
	require.NoError(t, err)
	assert.Equal(t, "999999999900.00", out.TotalPrice.StringFixed(2))
}

func TestCreateBill_UsaPrecioVigente(t *testing.T) {
	store := memstore.New()
	_, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	uc := newBillingUC(store, nil)
	ctx := context.Background()

	first, err := uc.CreateBill(ctx, caller, dto.CreateBillRequest{MedicineID: med.ID, Quantity: 2, PackagingType: "strip"})
	require.NoError(t, err)

	med.Price = decimal.RequireFromString("20.00")
	require.NoError(t, store.Medicines().Update(ctx, med))

	second, err := uc.CreateBill(ctx, caller, dto.CreateBillRequest{MedicineID: med.ID, Quantity: 2, PackagingType: "strip"})
	require.NoError(t, err)

	assert.True(t, first.TotalPrice.Equal(decimal.RequireFromString("25")))
	assert.True(t, second.TotalPrice.Equal(decimal.RequireFromString("40")))
}

func TestGetBill(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	_, caller := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Ibuprofeno", entity.PackagingStrip, "12.50")
	uc := newBillingUC(store, nil)
	ctx := context.Background()

	created, err := uc.CreateBill(ctx, caller, dto.CreateBillRequest{MedicineID: med.ID, Quantity: 1, PackagingType: "strip"})
	require.NoError(t, err)

	got, err := uc.GetBill(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ana", got.Staff.Username)

	_, err = uc.GetBill(ctx, caller, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, store.Medicines().Delete(ctx, med.ID))
	_, err = uc.GetBill(ctx, admin, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
