package routes

import (
	"github.com/ryobiguy/fanvault/handlers/subscriptions"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.POST("/subscribe", subscriptions.Subscribe)
		subscriptionRoutes.POST("/unsubscribe/:creatorId", subscriptions.Unsubscribe)
		subscriptionRoutes.GET("/my-subscriptions", subscriptions.GetMySubscriptions)
		subscriptionRoutes.GET("/my-subscribers", subscriptions.GetMySubscribers)
		subscriptionRoutes.GET("/status/:creatorId", subscriptions.GetSubscriptionStatus)
	}
}
