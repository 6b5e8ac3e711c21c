package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/reporting"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	MedicineUC *usecase.MedicineUseCase
	BillingUC  *billing.CreateBillUseCase
	ReceiptUC  *billing.ReceiptUseCase // opcional
	ReportUC   *reporting.ReportUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	admin := string(entity.RoleAdmin)
	manager := string(entity.RoleInventoryManager)
	staff := string(entity.RoleStaff)

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC, deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	userHandler := NewUserHandler(deps.UserUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Post("/register", requireAuth, RequireRole(admin), userHandler.Register)

	// Users (solo admin)
	users := api.Group("/users", requireAuth, RequireRole(admin))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Medicines: lectura para cualquier usuario autenticado, escritura solo inventory_manager
	medicineHandler := NewMedicineHandler(deps.MedicineUC, log)
	medicines := api.Group("/medicines", requireAuth)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Post("/", RequireRole(manager), medicineHandler.Create)
	medicines.Patch("/:id", RequireRole(manager), medicineHandler.Update)
	medicines.Put("/:id", RequireRole(manager), medicineHandler.Update)
	medicines.Delete("/:id", RequireRole(manager), medicineHandler.Delete)

	// Billing
	billHandler := NewBillHandler(deps.BillingUC, deps.ReceiptUC, log)
	api.Post("/billing", requireAuth, RequireRole(staff), billHandler.Create)
	bills := api.Group("/bills", requireAuth)
	bills.Get("/:id", RequireRole(admin), billHandler.GetByID)
	bills.Get("/:id/receipt", RequireRole(admin, staff), billHandler.Receipt)

	// Dashboard (solo admin)
	reportHandler := NewReportHandler(deps.ReportUC)
	dashboard := api.Group("/dashboard", requireAuth, RequireRole(admin))
	dashboard.Get("/stock", reportHandler.Stock)
	dashboard.Get("/reports", reportHandler.Sales)
}
