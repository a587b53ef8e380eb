package router

import (
	"github.com/gin-gonic/gin"

	"diacfix/internal/config"
	"diacfix/internal/handler"
	"diacfix/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	documentH *handler.DocumentHandler,
	paymentH *handler.PaymentHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Document processing and one-time download
	documents := v1.Group("/documents")
	documents.POST("/process", documentH.Process)

	results := v1.Group("/results")
	results.GET("/:id/download", documentH.Download)

	// Payment verification and Stripe webhook
	payments := v1.Group("/payments")
	payments.POST("/verify", paymentH.Verify)
	payments.POST("/webhook", paymentH.Webhook)

	// Admin routes - transactions ledger
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdminKey(cfg.Admin.APIKeyHash))
	admin.GET("/transactions", adminH.ListTransactions)
	admin.GET("/transactions/export", adminH.ExportTransactions)

	return r
}
