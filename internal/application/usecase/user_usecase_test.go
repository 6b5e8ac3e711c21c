package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func strPtr(s string) *string { return &s }

func TestUserUseCase_Register(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	t.Run("rol por defecto staff", func(t *testing.T) {
		out, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "ana", Password: "clave-segura", FullName: "Ana Pérez",
		})
		require.NoError(t, err)
		assert.Equal(t, "staff", out.Role)
		assert.NotEmpty(t, out.ID)

		stored, err := store.Users().GetByUsername(ctx, "ana")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "clave-segura", stored.PasswordHash)
	})

	t.Run("username duplicado", func(t *testing.T) {
		_, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "ana", Password: "otra-clave", FullName: "Otra Ana",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rol inválido", func(t *testing.T) {
		_, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "beto", Password: "clave-segura", FullName: "Beto", Role: "superuser",
		})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("password corto", func(t *testing.T) {
		_, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "carla", Password: "123", FullName: "Carla",
		})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "password", ve.Field)
	})

	t.Run("password de más de 72 bytes", func(t *testing.T) {
		// bcrypt truncaría en silencio: se rechaza en lugar de aceptar una clave más corta
		_, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "elena", Password: strings.Repeat("a", 73), FullName: "Elena",
		})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "password", ve.Field)

		_, err = uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "elena", Password: strings.Repeat("a", 72), FullName: "Elena",
		})
		assert.NoError(t, err)
	})

	t.Run("teléfono de más de 15 caracteres", func(t *testing.T) {
		_, err := uc.Register(ctx, admin, dto.RegisterUserRequest{
			Username: "dora", Password: "clave-segura", FullName: "Dora", PhoneNumber: "+57 300 000 00000",
		})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "phone_number", ve.Field)
	})
}

func TestUserUseCase_SoloAdmin(t *testing.T) {
	store := memstore.New()
	target, _ := store.AddUser("ana", entity.RoleStaff)
	_, manager := store.AddUser("gestor", entity.RoleInventoryManager)
	_, staff := store.AddUser("beto", entity.RoleStaff)
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	for _, caller := range []authz.Caller{manager, staff} {
		_, err := uc.Register(ctx, caller, dto.RegisterUserRequest{Username: "x", Password: "clave-segura", FullName: "X"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = uc.GetByID(ctx, caller, target.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = uc.List(ctx, caller, dto.ListUsersRequest{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = uc.Update(ctx, caller, target.ID, dto.UpdateUserRequest{FullName: strPtr("Y")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = uc.Delete(ctx, caller, target.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}

	_, err := uc.List(ctx, authz.Anonymous(), dto.ListUsersRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUserUseCase_UpdateParcial(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	target, _ := store.AddUser("ana", entity.RoleStaff)
	store.AddUser("beto", entity.RoleStaff)
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	out, err := uc.Update(ctx, admin, target.ID, dto.UpdateUserRequest{FullName: strPtr("Ana María")})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.FullName)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, "staff", out.Role)

	out, err = uc.Update(ctx, admin, target.ID, dto.UpdateUserRequest{Role: strPtr("inventory_manager")})
	require.NoError(t, err)
	assert.Equal(t, "inventory_manager", out.Role)
	assert.Equal(t, "Ana María", out.FullName)

	_, err = uc.Update(ctx, admin, target.ID, dto.UpdateUserRequest{Username: strPtr("beto")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, admin, target.ID, dto.UpdateUserRequest{Password: strPtr(strings.Repeat("x", 80))})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	_, err = uc.Update(ctx, admin, "no-existe", dto.UpdateUserRequest{FullName: strPtr("Z")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_DeleteEnCascada(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	staff, _ := store.AddUser("ana", entity.RoleStaff)
	med := store.AddMedicine("Aspirina", entity.PackagingStrip, "5.00")
	store.PutBill(entity.Bill{ID: "b-1", StaffID: staff.ID, MedicineID: med.ID, Quantity: 1, PackagingType: entity.PackagingStrip})
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	out, err := uc.Delete(ctx, admin, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, 0, store.BillCount())

	_, err = uc.GetByID(ctx, admin, staff.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ListFiltraPorRol(t *testing.T) {
	store := memstore.New()
	_, admin := store.AddUser("admin", entity.RoleAdmin)
	store.AddUser("ana", entity.RoleStaff)
	store.AddUser("beto", entity.RoleStaff)
	store.AddUser("gestor", entity.RoleInventoryManager)
	uc := usecase.NewUserUseCase(store.Users())

	out, err := uc.List(context.Background(), admin, dto.ListUsersRequest{Role: "staff"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)

	_, err = uc.List(context.Background(), admin, dto.ListUsersRequest{Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
