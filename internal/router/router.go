package router

import (
	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/handler"
	"github.com/SuperShot3/order-form/internal/middleware"
	"github.com/SuperShot3/order-form/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	parseH *handler.ParseHandler,
	orderH *handler.OrderHandler,
	settingsH *handler.SettingsHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	auth.GET("/status", authH.Status)

	// Protected routes - require a valid session when a password is set
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Order-text intake
	parse := protected.Group("/parse")
	parse.POST("", parseH.Parse)
	parse.GET("/status", parseH.Status)
	parse.POST("/test", parseH.TestConnection)

	// Order ledger
	orders := protected.Group("/orders")
	orders.GET("", orderH.List)
	orders.GET("/summary", orderH.Summary)
	orders.POST("", orderH.Create)
	orders.GET("/:id", orderH.Get)
	orders.PUT("/:id", orderH.Update)
	orders.DELETE("/:id", orderH.Delete)
	orders.GET("/:id/messages", orderH.Messages)

	// Operator settings
	settings := protected.Group("/settings")
	settings.GET("", settingsH.Get)
	settings.PUT("", settingsH.Update)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/driver", reportH.Driver)
	reports.POST("/driver/email", reportH.EmailDriver)
	reports.GET("/finance", reportH.Finance)
	reports.GET("/orders", reportH.Orders)

	return r
}
