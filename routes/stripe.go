package routes

import (
	"github.com/ryobiguy/fanvault/handlers/stripe"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func StripeRoutes(r *gin.Engine) {
	r.POST("/payments/create-creator-subscription", middleware.CreatorAuth(), stripe.CreateCreatorCheckoutSession)
	r.GET("/payments/creator-subscription-status", middleware.CreatorAuth(), stripe.GetCreatorSubscriptionStatus)

	// Webhook is authenticated by the Stripe signature, not by JWT
	r.POST("/stripe/webhook", stripe.StripeWebhookHandler)
}
