package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/config"
	"github.com/example/deraza/internal/handlers"
	"github.com/example/deraza/internal/middleware"
	"github.com/example/deraza/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	smsService := services.NewSMSService(cfg.EskizEmail, cfg.EskizPassword, cfg.EskizFrom)
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	orderService := services.NewOrderService(db, telegramService)

	authHandler := handlers.NewAuthHandler(db, cfg, smsService)
	templateHandler := handlers.NewTemplateHandler(db)
	orderHandler := handlers.NewOrderHandler(db, orderService)
	companyHandler := handlers.NewCompanyHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.Verify)

	// Materials catalog
	materials := api.Group("/material-types")
	materials.Get("/", catalogHandler.ListMaterialTypes)
	materials.Post("/", catalogHandler.CreateMaterialType)
	materials.Get("/:id", catalogHandler.GetMaterialType)
	materials.Put("/:id", catalogHandler.UpdateMaterialType)
	materials.Delete("/:id", catalogHandler.DeleteMaterialType)

	profils := api.Group("/profil-types")
	profils.Get("/", catalogHandler.ListProfilTypes)
	profils.Post("/", catalogHandler.CreateProfilType)
	profils.Delete("/:id", catalogHandler.DeleteProfilType)

	glassLayers := api.Group("/glass-layers")
	glassLayers.Get("/", catalogHandler.ListGlassLayers)
	glassLayers.Post("/", catalogHandler.CreateGlassLayer)
	glassLayers.Delete("/:id", catalogHandler.DeleteGlassLayer)

	glassTypes := api.Group("/glass-types")
	glassTypes.Get("/", catalogHandler.ListGlassTypes)
	glassTypes.Post("/", catalogHandler.CreateGlassType)
	glassTypes.Delete("/:id", catalogHandler.DeleteGlassType)

	designs := api.Group("/design-options")
	designs.Get("/", catalogHandler.ListDesignOptions)
	designs.Post("/", catalogHandler.CreateDesignOption)
	designs.Delete("/:id", catalogHandler.DeleteDesignOption)

	designVariants := api.Group("/design-variants")
	designVariants.Post("/", catalogHandler.CreateDesignVariant)
	designVariants.Delete("/:id", catalogHandler.DeleteDesignVariant)

	sashProfils := api.Group("/sash-profil-types")
	sashProfils.Get("/", catalogHandler.ListSashProfilTypes)
	sashProfils.Post("/", catalogHandler.CreateSashProfilType)

	frameProfils := api.Group("/frame-profil-types")
	frameProfils.Get("/", catalogHandler.ListFrameProfilTypes)
	frameProfils.Post("/", catalogHandler.CreateFrameProfilType)

	handles := api.Group("/handle-types")
	handles.Get("/", catalogHandler.ListHandleTypes)
	handles.Post("/", catalogHandler.CreateHandleType)
	handles.Delete("/:id", catalogHandler.DeleteHandleType)

	// Reference data
	api.Get("/regions", companyHandler.ListRegions)
	api.Post("/regions", companyHandler.CreateRegion)
	api.Get("/districts", companyHandler.ListDistricts)
	api.Post("/districts", companyHandler.CreateDistrict)

	dealers := api.Group("/dealers")
	dealers.Get("/", companyHandler.ListDealers)
	dealers.Post("/", companyHandler.CreateDealer)
	dealers.Delete("/:id", companyHandler.DeleteDealer)

	providers := api.Group("/providers")
	providers.Get("/", companyHandler.ListProviders)
	providers.Post("/", companyHandler.CreateProvider)
	providers.Delete("/:id", companyHandler.DeleteProvider)

	// Templates
	templates := api.Group("/templates")
	templates.Get("/", templateHandler.ListTemplates)
	templates.Post("/", templateHandler.CreateTemplate)
	templates.Get("/:id", templateHandler.GetTemplate)
	templates.Put("/:id", templateHandler.UpdateTemplate)
	templates.Delete("/:id", templateHandler.DeleteTemplate)
	templates.Get("/:id/sections", templateHandler.ListSections)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/profile", authHandler.Profile)

	orders := protected.Group("/orders")
	orders.Post("/window", orderHandler.CreateWindowOrder)
	orders.Post("/door", orderHandler.CreateDoorOrder)
	orders.Post("/", orderHandler.CreateOrderDetail)
	orders.Get("/", orderHandler.ListNewOrders)
	orders.Get("/products", orderHandler.ListOrders)
	orders.Get("/products/:id", orderHandler.GetOrder)

	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.ListCompanies)
	companies.Post("/", companyHandler.CreateCompany)
	companies.Put("/:id", companyHandler.UpdateCompany)

	employees := protected.Group("/employees")
	employees.Get("/", employeeHandler.ListEmployees)
	employees.Post("/", employeeHandler.CreateEmployee)
	employees.Put("/:id", employeeHandler.UpdateEmployee)
	employees.Delete("/:id", employeeHandler.DeleteEmployee)
	employees.Post("/salaries", employeeHandler.AddSalary)
	employees.Get("/:id/salaries", employeeHandler.SalaryHistory)

	protected.Get("/dashboard", dashboardHandler.Stats)
}
