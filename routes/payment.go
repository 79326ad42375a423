package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/junaidrashid-git/storefront-api/controllers/payment"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	payment := r.Group("/payment")
	{
		payment.POST("/verify", paymentControllers.Verify(d.DB, d.Gateway, d.RazorpaySecret, d.Cache, d.Hub, d.Log))

		// Webhook endpoint: middleware checks the body signature
		payment.POST("/webhook",
			middleware.RazorpayWebhookAuth(d.WebhookSecret, d.Log),
			paymentControllers.Webhook(d.DB, d.Cache, d.Hub, d.Log),
		)
	}
}
