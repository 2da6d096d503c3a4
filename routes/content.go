package routes

import (
	"github.com/ryobiguy/fanvault/handlers/content"
	"github.com/ryobiguy/fanvault/handlers/content/likes"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func ContentRoutes(r *gin.Engine) {
	// Public listing of one creator's published posts
	r.GET("/content/creator/:creatorId", content.GetCreatorContent)

	contentRoutes := r.Group("/content")
	contentRoutes.Use(middleware.JWTAuth())
	{
		contentRoutes.GET("/feed", content.GetFeed)
		contentRoutes.GET("/:contentId", content.GetContentByID)
		contentRoutes.POST("/:contentId/like", likes.ToggleLike)
	}

	r.POST("/content", middleware.CreatorAuth(), content.CreateContent)
	r.DELETE("/content/:contentId", middleware.CreatorAuth(), content.DeleteContent)
}
