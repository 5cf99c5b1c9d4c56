package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/server/handlers"
)

// Handlers bundles every HTTP adapter the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Schedule  *handlers.ScheduleHandler
	Users     *handlers.UserHandler
	Assist    *handlers.AssistHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)

	authed := api.Group("", h.Auth.Middleware())
	authed.POST("/logout", h.Auth.Logout)
	authed.PUT("/me/pin", h.Auth.ChangePIN)

	authed.GET("/inventory", h.Inventory.List)
	authed.GET("/budget", h.Inventory.Budget)
	authed.GET("/audit", h.Inventory.Audit)

	authed.GET("/schedule", h.Schedule.Current)
	authed.GET("/schedule/me", h.Schedule.Mine)
	authed.GET("/schedule/me/today", h.Schedule.Today)
	authed.GET("/schedule/by-day", h.Schedule.ByDay)

	manager := authed.Group("", handlers.RequireRole(models.RoleManager))
	manager.POST("/inventory", h.Inventory.Add)
	manager.PUT("/inventory/:id/stock", h.Inventory.UpdateStock)
	manager.GET("/inventory/shipment", h.Inventory.Shipment)
	manager.POST("/schedule", h.Schedule.Upload)
	manager.GET("/users", h.Users.List)
	manager.POST("/users", h.Users.Create)
	manager.POST("/assist/forecast", h.Assist.Forecast)
	manager.POST("/assist/shipment-report", h.Assist.ShipmentReport)

	admin := authed.Group("", handlers.RequireRole(models.RoleAdminManager))
	admin.PUT("/budget", h.Inventory.UpdateBudget)
	admin.DELETE("/users/:id", h.Users.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
