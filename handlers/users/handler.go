package users

import (
	"net/http"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get a public profile
// @Description Retrieve a profile by username, with active tiers and subscriber count for creators
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{} "profile: profile data"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/profile/{username} [get]
func GetProfileByUsername(c *gin.Context) {
	username := c.Param("username")

	var profile models.Profile
	if err := db.DB.Where("username = ?", username).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var user models.User
	if err := db.DB.Where("id = ? AND is_active = ?", profile.UserID, true).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var subscriberCount int64
	db.DB.Model(&models.FanSubscription{}).
		Where("creator_id = ? AND status = ?", user.ID, models.FanSubscriptionActive).
		Count(&subscriberCount)

	tiers := []models.SubscriptionTier{}
	if user.Role == models.CreatorRole {
		db.DB.Where("creator_id = ? AND is_active = ?", user.ID, true).
			Order("tier_level").Find(&tiers)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":                user.ID,
			"role":              user.Role,
			"displayName":       profile.DisplayName,
			"username":          profile.Username,
			"bio":               profile.Bio,
			"avatar":            profile.AvatarURL,
			"coverImage":        profile.CoverImageURL,
			"location":          profile.Location,
			"website":           profile.Website,
			"isVerified":        user.IsVerified,
			"subscriberCount":   subscriberCount,
			"subscriptionTiers": tiers,
		},
	})
}

// @Summary Update own profile
// @Description Update the caller's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param profile body models.ProfileUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/profile [put]
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if input.DisplayName != "" {
		profile.DisplayName = input.DisplayName
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		profile.AvatarURL = input.AvatarURL
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Website != "" {
		profile.Website = input.Website
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating profile in UpdateProfile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Replace subscription tiers
// @Description Replace the calling creator's whole tier set (1 to 3 tiers) atomically
// @Tags users
// @Accept json
// @Produce json
// @Param tiers body models.TierReplace true "New tier set"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "tiers: new tier set"
// @Failure 400 {object} map[string]string "error: Validation error"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Failed to update subscription tiers"
// @Router /users/subscription-tiers [put]
func ReplaceSubscriptionTiers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.TierReplace
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if len(input.Tiers) < 1 || len(input.Tiers) > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Between 1 and 3 tiers required"})
		return
	}

	levels := make(map[int]bool)
	for _, spec := range input.Tiers {
		if spec.TierLevel < 1 || spec.TierLevel > 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tier level must be between 1 and 3"})
			return
		}
		if levels[spec.TierLevel] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate tier level"})
			return
		}
		levels[spec.TierLevel] = true

		if !utils.ValidatePrice(spec.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tier price must be at least 0.50"})
			return
		}
	}

	// Replacing the set is a delete-then-insert in one transaction
	newTiers := make([]models.SubscriptionTier, 0, len(input.Tiers))
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", userID).Delete(&models.SubscriptionTier{}).Error; err != nil {
			return err
		}

		for _, spec := range input.Tiers {
			tier := models.SubscriptionTier{
				CreatorID:   userID.(string),
				TierName:    spec.TierName,
				TierLevel:   spec.TierLevel,
				Price:       spec.Price,
				Description: spec.Description,
				IsActive:    true,
			}
			if err := tx.Create(&tier).Error; err != nil {
				return err
			}
			newTiers = append(newTiers, tier)
		}

		return nil
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error replacing tiers in ReplaceSubscriptionTiers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription tiers"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription tiers replaced successfully in ReplaceSubscriptionTiers")
	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription tiers updated successfully",
		"tiers":   newTiers,
	})
}
