package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/freelanceflow/marketplace-api/internal/api/handler"
	"github.com/freelanceflow/marketplace-api/internal/api/middleware"
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// Dependencies carries everything the router needs to register routes.
type Dependencies struct {
	AuthService         ports.AuthService
	UserService         ports.UserService
	ProjectService      ports.ProjectService
	TaskService         ports.TaskService
	NotificationService ports.NotificationService

	JWTSecret      string
	AllowedOrigins []string

	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	projectHandler := handler.NewProjectHandler(deps.ProjectService)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	notificationHandler := handler.NewNotificationHandler(deps.NotificationService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pool, deps.Redis)

	authRequired := middleware.Auth(deps.JWTSecret, deps.AuthService)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.POST("/logout", authHandler.Logout)

	// --- User routes ---
	users := v1.Group("/users", authRequired)
	users.GET("", userHandler.List)
	users.GET("/:user_id", userHandler.Get)
	users.PUT("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeactivateMe)

	// --- Project routes ---
	projects := v1.Group("/projects", authRequired)
	projects.POST("", projectHandler.Create,
		middleware.RBAC("Only clients can create projects", domain.RoleClient))
	projects.GET("", projectHandler.List)
	projects.GET("/:project_id", projectHandler.Get)
	projects.PUT("/:project_id", projectHandler.Update)
	projects.DELETE("/:project_id", projectHandler.Delete)

	// --- Task routes ---
	tasks := v1.Group("/tasks", authRequired)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/my-tasks", taskHandler.MyTasks,
		middleware.RBAC("Only workers can view assigned tasks", domain.RoleWorker))
	tasks.GET("/:task_id", taskHandler.Get)
	tasks.PUT("/:task_id", taskHandler.Update)
	tasks.DELETE("/:task_id", taskHandler.Delete)
	tasks.POST("/:task_id/claim", taskHandler.Claim,
		middleware.RBAC("Only workers can claim tasks", domain.RoleWorker))

	// --- Notification routes ---
	notifications := v1.Group("/notifications", authRequired)
	notifications.GET("", notificationHandler.List)
	notifications.PUT("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.PUT("/:notification_id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:notification_id", notificationHandler.Delete)

	return e
}
