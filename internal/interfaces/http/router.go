package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/application/verification"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	VerificationUC *verification.UseCase
	CompanyUC      *usecase.CompanyUseCase
	ProfileUC      *usecase.ProfileUseCase
	StaffUC        *usecase.StaffUseCase
	ProductUC      *usecase.ProductUseCase
	ReportUC       *usecase.ReportUseCase
	JWTSecret      string
}

// Router registers the API routes. Three tiers: public (registration and the
// verification probes), authenticated (any valid token), and owner-only
// (RequireRole business_owner).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Public: verification probes
	verificationHandler := NewVerificationHandler(deps.VerificationUC, deps.AuthUC)
	api.Post("/send-verification-code", verificationHandler.SendCode)
	api.Post("/verify-email-code", verificationHandler.VerifyCode)
	api.Post("/check-email", verificationHandler.CheckEmail)
	api.Post("/check-username", verificationHandler.CheckUsername)

	// Public: registration and login
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register/business-owner", authHandler.RegisterOwner)
	api.Post("/register/staff", authHandler.RegisterStaff)
	api.Post("/login", authHandler.Login)

	// Public: companies for the registration dropdown
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Get("/companies", companyHandler.List)
	api.Get("/companies/:id", companyHandler.GetByID)

	// Authenticated (any role)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	profileHandler := NewProfileHandler(deps.ProfileUC)
	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)
	protected.Post("/profile/change-password", authHandler.ChangePassword)

	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.GetByID)

	// Owner-only: staff management and reports
	owner := protected.Group("/", RequireRole(entity.RoleBusinessOwner))

	staffHandler := NewStaffHandler(deps.StaffUC)
	owner.Get("/staff", staffHandler.List)
	owner.Post("/staff", staffHandler.Add)
	owner.Get("/staff/:id", staffHandler.Get)
	owner.Put("/staff/:id/active", staffHandler.SetActive)

	reportHandler := NewReportHandler(deps.ReportUC)
	owner.Get("/reports/dashboard", reportHandler.Dashboard)
	owner.Get("/reports/inventory", reportHandler.Inventory)
	owner.Get("/reports/staff-activity", reportHandler.StaffActivity)
}
