package routes

import (
	"github.com/ryobiguy/fanvault/handlers/users"
	"github.com/ryobiguy/fanvault/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	// Public profile
	r.GET("/users/profile/:username", users.GetProfileByUsername)

	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.PUT("/profile", users.UpdateProfile)
	}

	r.PUT("/users/subscription-tiers", middleware.CreatorAuth(), users.ReplaceSubscriptionTiers)
}
