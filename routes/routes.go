package routes

import (
	"github.com/gin-gonic/gin"

	"referralbridge/internal/handlers"
	"referralbridge/internal/middleware"
)

type Handlers struct {
	Webhook *handlers.WebhookHandler
	Admin   *handlers.AdminHandler
	Health  *handlers.HealthHandler
}

type Secrets struct {
	JWT     string
	Webhook string
}

// Setup registers every route of the referral bridge on the router.
func Setup(r *gin.Engine, h *Handlers, secrets Secrets) {
	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")
	SetupWebhookRoutes(v1, h.Webhook, secrets.Webhook)
	SetupAdminRoutes(v1, h.Admin, secrets.JWT)
}

// SetupWebhookRoutes sets up the order webhooks called by the shop platform
func SetupWebhookRoutes(r *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, secret string) {
	webhooks := r.Group("/webhooks/orders")
	webhooks.Use(middleware.WebhookSignature(secret))
	{
		webhooks.POST("/created", webhookHandler.OrderCreated)
		webhooks.POST("/status", webhookHandler.StatusChanged)
	}
}

func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		// Referrals
		admin.GET("/referrals", adminHandler.ListReferrals)
		admin.POST("/referrals/export", adminHandler.ExportReferrals)
		admin.GET("/referrals/exports", adminHandler.ListExports)
		admin.DELETE("/referrals/exports/:name", adminHandler.DeleteExport)

		// Settings
		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)

		// Metadata read by referral origination
		admin.GET("/coupons/:code/affiliate", adminHandler.GetCouponAffiliate)
		admin.PUT("/coupons/:code/affiliate", adminHandler.AttachCouponAffiliate)
		admin.GET("/products/:id/rate", adminHandler.GetProductRate)
		admin.PUT("/products/:id/rate", adminHandler.SaveProductRate)
	}
}
