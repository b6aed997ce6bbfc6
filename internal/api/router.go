package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuscal/calendar-system/internal/api/handler"
	"github.com/campuscal/calendar-system/internal/api/middleware"
	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/service"
	"github.com/campuscal/calendar-system/internal/infrastructure/config"
	mongodb "github.com/campuscal/calendar-system/internal/infrastructure/db/mongo"
	redisdb "github.com/campuscal/calendar-system/internal/infrastructure/db/redis"
	"github.com/campuscal/calendar-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("calendar"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	revocations := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(accountRepo, cfg.SessionSecret, cfg.SessionTTL)
	accountService := service.NewAccountService(accountRepo, log)
	eventService := service.NewEventService(eventRepo, log)

	secureCookies := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, accountService, revocations, cfg.SessionTTL, secureCookies)
	accountHandler := handler.NewAccountHandler(accountService)
	eventHandler := handler.NewEventHandler(eventService)
	embedHandler := handler.NewEmbedHandler(eventService)
	dashboardHandler := handler.NewDashboardHandler()

	// Claims reader then gate, in that order, on every request.
	e.Use(middleware.Session(cfg.SessionSecret, revocations, log))
	e.Use(middleware.Gate())

	// --- Public surface ---
	e.GET("/", dashboardHandler.Home)
	e.GET("/embed", embedHandler.Widget)
	e.GET("/api/events", eventHandler.List)
	e.GET("/api/events/:id", eventHandler.Get)

	// --- Auth surface ---
	e.GET("/auth/signin", authHandler.SignInPage)
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/signout", authHandler.SignOut)
	e.POST("/auth/setup", authHandler.Setup)

	// --- Role dashboards (gate-enforced by path prefix) ---
	e.GET("/admin", dashboardHandler.Admin)
	e.GET("/cio", dashboardHandler.CIO)
	e.GET("/super-admin", dashboardHandler.SuperAdmin)

	// --- Event mutations ---
	events := e.Group("/api/events", middleware.RBAC(domain.RoleAdmin, domain.RoleCIO, domain.RoleSuperAdmin))
	events.POST("", eventHandler.Create)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)

	// --- User management (super-admin only) ---
	accounts := e.Group("/api/accounts", middleware.RBAC(domain.RoleSuperAdmin))
	accounts.GET("", accountHandler.List)
	accounts.POST("", accountHandler.Create)
	accounts.PATCH("/:id/role", accountHandler.UpdateRole)
	accounts.DELETE("/:id", accountHandler.Delete)

	// Self-service password change: any authenticated role.
	e.POST("/api/accounts/password", accountHandler.ChangePassword,
		middleware.RBAC(domain.RoleAdmin, domain.RoleCIO, domain.RoleSuperAdmin))

	// --- Operability ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
