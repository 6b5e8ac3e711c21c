package postgres_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// Estas pruebas corren contra un PostgreSQL real y vacían sus tablas.
// Se omiten si FARMACIA_TEST_DATABASE_URL no está definido.
const testDatabaseEnv = "FARMACIA_TEST_DATABASE_URL"

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skip(testDatabaseEnv + " no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	log := logger.New(logger.Config{Env: "test", Level: "error", Output: io.Discard})
	require.NoError(t, postgres.Migrate(ctx, pool, log))
	_, err = pool.Exec(ctx, `TRUNCATE bills, medicines, users`)
	require.NoError(t, err)
	return pool
}

func insertUser(t *testing.T, repo *postgres.UserRepo, username string, role entity.Role) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID: uuid.NewString(), Username: username, PasswordHash: "hash", FullName: username,
		Role: role, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func insertMedicine(t *testing.T, repo *postgres.MedicineRepo, name string, price string) *entity.Medicine {
	t.Helper()
	now := time.Now().UTC()
	m := &entity.Medicine{
		ID: uuid.NewString(), Name: name, Category: "general", Stock: 10,
		ExpiryDate:    time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC),
		PackagingType: entity.PackagingStrip, Price: decimal.RequireFromString(price),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func insertBill(t *testing.T, repo *postgres.BillRepo, staffID, medicineID string, created time.Time) *entity.Bill {
	t.Helper()
	b := &entity.Bill{
		ID: uuid.NewString(), StaffID: staffID, MedicineID: medicineID, Quantity: 2,
		PackagingType: entity.PackagingStrip, TotalPrice: decimal.RequireFromString("25.00"), CreatedAt: created,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestMedicineRepo_ListarYBuscar(t *testing.T) {
	pool := testPool(t)
	repo := postgres.NewMedicineRepository(pool)
	ctx := context.Background()
	insertMedicine(t, repo, "Paracetamol", "2.00")
	insertMedicine(t, repo, "Aspirina", "5.00")
	insertMedicine(t, repo, "ASPIRINA Forte", "8.50")

	list, err := repo.List(ctx, repository.MedicineFilter{Search: "aspi"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ASPIRINA Forte", list[0].Name)
	assert.Equal(t, "Aspirina", list[1].Name)

	list, err = repo.List(ctx, repository.MedicineFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = repo.List(ctx, repository.MedicineFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paracetamol", list[0].Name)
	assert.Equal(t, "2.00", list[0].Price.StringFixed(2))

	err = repo.Create(ctx, &entity.Medicine{
		ID: uuid.NewString(), Name: "Aspirina", Category: "general",
		ExpiryDate: time.Now(), PackagingType: entity.PackagingBox, Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRepos_IDNoUUIDEsNoEncontrado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	m, err := postgres.NewMedicineRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, m)

	u, err := postgres.NewUserRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, u)

	b, err := postgres.NewBillRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, b)

	err = postgres.NewUserRepository(pool).Delete(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportRepo_SalesRowsFiltros(t *testing.T) {
	pool := testPool(t)
	users := postgres.NewUserRepository(pool)
	bills := postgres.NewBillRepository(pool)
	reports := postgres.NewReportRepository(pool)
	ctx := context.Background()

	ana := insertUser(t, users, "ana", entity.RoleStaff)
	beto := insertUser(t, users, "beto", entity.RoleStaff)
	med := insertMedicine(t, postgres.NewMedicineRepository(pool), "Ibuprofeno", "12.50")
	day := func(d int) time.Time { return time.Date(2026, 3, d, 15, 0, 0, 0, time.UTC) }
	first := insertBill(t, bills, ana.ID, med.ID, day(1))
	insertBill(t, bills, beto.ID, med.ID, day(5))
	insertBill(t, bills, ana.ID, med.ID, day(10))

	rows, err := reports.SalesRows(ctx, repository.BillFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ana", rows[0].StaffName)
	assert.Equal(t, "Ibuprofeno", rows[0].MedicineName)
	assert.Equal(t, "25.00", rows[0].TotalPrice.StringFixed(2))

	from, to := day(1).Truncate(24*time.Hour), day(6).Truncate(24*time.Hour)
	rows, err = reports.SalesRows(ctx, repository.BillFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = reports.SalesRows(ctx, repository.BillFilter{StaffID: ana.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = reports.SalesRows(ctx, repository.BillFilter{From: &from, To: &to, StaffID: ana.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)

	stock, err := reports.StockLevels(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, 10, stock[0].Stock)
}

func TestTxRunner_RunBilling(t *testing.T) {
	pool := testPool(t)
	staff := insertUser(t, postgres.NewUserRepository(pool), "ana", entity.RoleStaff)
	med := insertMedicine(t, postgres.NewMedicineRepository(pool), "Ibuprofeno", "12.50")
	bills := postgres.NewBillRepository(pool)
	runner := postgres.NewTxRunner(pool)
	ctx := context.Background()

	var committed string
	err := runner.RunBilling(ctx, func(_ repository.UserRepository, m repository.MedicineRepository, b repository.BillRepository) error {
		got, err := m.GetByIDForShare(ctx, med.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		bill := &entity.Bill{
			ID: uuid.NewString(), StaffID: staff.ID, MedicineID: got.ID, Quantity: 3,
			PackagingType: got.PackagingType, TotalPrice: got.Price.Mul(decimal.NewFromInt(3)), CreatedAt: time.Now().UTC(),
		}
		committed = bill.ID
		return b.Create(ctx, bill)
	})
	require.NoError(t, err)
	stored, err := bills.GetByID(ctx, committed)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "37.50", stored.TotalPrice.StringFixed(2))

	errAbort := errors.New("abortar")
	var rolledBack string
	err = runner.RunBilling(ctx, func(_ repository.UserRepository, _ repository.MedicineRepository, b repository.BillRepository) error {
		bill := &entity.Bill{
			ID: uuid.NewString(), StaffID: staff.ID, MedicineID: med.ID, Quantity: 1,
			PackagingType: entity.PackagingStrip, TotalPrice: med.Price, CreatedAt: time.Now().UTC(),
		}
		rolledBack = bill.ID
		require.NoError(t, b.Create(ctx, bill))
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)
	stored, err = bills.GetByID(ctx, rolledBack)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRepos_BorradoEnCascada(t *testing.T) {
	pool := testPool(t)
	users := postgres.NewUserRepository(pool)
	medicines := postgres.NewMedicineRepository(pool)
	bills := postgres.NewBillRepository(pool)
	ctx := context.Background()

	ana := insertUser(t, users, "ana", entity.RoleStaff)
	beto := insertUser(t, users, "beto", entity.RoleStaff)
	ibu := insertMedicine(t, medicines, "Ibuprofeno", "12.50")
	para := insertMedicine(t, medicines, "Paracetamol", "2.00")
	byAna := insertBill(t, bills, ana.ID, para.ID, time.Now().UTC())
	ofIbu := insertBill(t, bills, beto.ID, ibu.ID, time.Now().UTC())
	kept := insertBill(t, bills, beto.ID, para.ID, time.Now().UTC())

	require.NoError(t, users.Delete(ctx, ana.ID))
	require.NoError(t, medicines.Delete(ctx, ibu.ID))

	for _, id := range []string{byAna.ID, ofIbu.ID} {
		b, err := bills.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, b, id)
	}
	b, err := bills.GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.NotNil(t, b)
}
