package routes

import (
	"github.com/ryobiguy/fanvault/handlers/messages"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func MessagesRoutes(r *gin.Engine) {
	messagesRoutes := r.Group("/messages")
	messagesRoutes.Use(middleware.JWTAuth())
	{
		messagesRoutes.POST("", messages.SendMessage)
		messagesRoutes.GET("/conversations", messages.GetConversations)
		messagesRoutes.GET("/thread/:userId", messages.GetThread)
		messagesRoutes.PUT("/:messageId/read", messages.MarkMessageRead)
		messagesRoutes.DELETE("/:messageId", messages.DeleteMessage)
	}
}
