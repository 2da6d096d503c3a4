package routes

import (
	"github.com/ryobiguy/fanvault/handlers/payments"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine) {
	paymentsRoutes := r.Group("/payments")
	paymentsRoutes.Use(middleware.JWTAuth())
	{
		paymentsRoutes.POST("/purchase-content", payments.PurchaseContent)
		paymentsRoutes.POST("/purchase-message", payments.PurchaseMessage)
		paymentsRoutes.GET("/transactions", payments.GetTransactions)
	}

	r.GET("/payments/earnings", middleware.CreatorAuth(), payments.GetEarnings)
}
