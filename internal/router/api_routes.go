package router

import (
	"budget-admin/internal/config"
	"budget-admin/internal/handler"
	"budget-admin/internal/middleware"
	"budget-admin/internal/repository"
	"budget-admin/internal/service"
	"budget-admin/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	sessionRepo := repository.NewImportSessionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	sheetService := service.NewSheetService()
	importService := service.NewSchemeImportService(sheetService, schemeRepo, auditRepo, utils.GetLogger())

	// Initialize Asynq client (optional - only if Redis is available).
	// Assigned through the interface only when the client exists so the
	// handler's nil check keeps working.
	var enqueuer handler.TaskEnqueuer
	if redis != nil {
		enqueuer = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	schemeHandler := handler.NewSchemeHandler(schemeRepo, sheetService)
	departmentHandler := handler.NewDepartmentHandler(departmentRepo)
	importHandler := handler.NewImportHandler(importService, sessionRepo, enqueuer, cfg)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	// Scheme routes
	schemes := protected.Group("/schemes")
	schemes.Get("/", schemeHandler.GetSchemes)
	schemes.Get("/export", schemeHandler.ExportSchemes)
	schemes.Get("/import/template", schemeHandler.DownloadTemplate)
	schemes.Post("/import", importHandler.ImportSchemes)
	schemes.Get("/:id", schemeHandler.GetScheme)
	schemes.Post("/", schemeHandler.CreateScheme)
	schemes.Put("/:id", schemeHandler.UpdateScheme)
	schemes.Delete("/:id", schemeHandler.DeleteScheme)

	// Department routes
	departments := protected.Group("/departments")
	departments.Get("/", departmentHandler.GetDepartments)
	departments.Get("/:id", departmentHandler.GetDepartment)
	departments.Post("/", departmentHandler.CreateDepartment)
	departments.Put("/:id", departmentHandler.UpdateDepartment)
	departments.Delete("/:id", departmentHandler.DeleteDepartment)

	// Deferred import routes
	imports := protected.Group("/imports")
	imports.Post("/", importHandler.CreateDeferredImport)
	imports.Get("/", importHandler.GetSessions)
	imports.Get("/:id", importHandler.GetSessionDetail)
}
