package subscriptions

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// @Summary Subscribe to a creator tier
// @Description Create an active subscription for the calling fan; at most one active subscription per creator
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body models.SubscribeRequest true "Creator and tier"
// @Security BearerAuth
// @Success 201 {object} models.FanSubscription
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Only fans can subscribe to creators"
// @Failure 404 {object} map[string]string "error: Subscription tier not found"
// @Failure 409 {object} map[string]string "error: Already subscribed to this creator"
// @Failure 500 {object} map[string]string "error: Failed to subscribe"
// @Router /subscriptions/subscribe [post]
func Subscribe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	if role != string(models.FanRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only fans can subscribe to creators"})
		return
	}

	var input models.SubscribeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	if _, err := uuid.Parse(input.CreatorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid creator ID"})
		return
	}
	if _, err := uuid.Parse(input.TierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	// Fast-path check; the partial unique index on (fan_id, creator_id)
	// WHERE status = 'active' is the authoritative guard.
	var existing models.FanSubscription
	err := db.DB.Where("fan_id = ? AND creator_id = ? AND status = ?",
		userID, input.CreatorID, models.FanSubscriptionActive).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already subscribed to this creator"})
		return
	}

	var tier models.SubscriptionTier
	err = db.DB.Where("id = ? AND creator_id = ?", input.TierID, input.CreatorID).First(&tier).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription tier not found"})
		return
	}

	now := time.Now()
	subscription := models.FanSubscription{
		FanID:              userID.(string),
		CreatorID:          input.CreatorID,
		TierID:             input.TierID,
		Status:             models.FanSubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}

	// Renewal billing belongs to the payment provider; this records the
	// first period and both ledger rows atomically.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		fanRow := models.Transaction{
			UserID:          userID.(string),
			TransactionType: models.TransactionSubscription,
			Amount:          tier.Price,
			Status:          models.TransactionCompleted,
			Description:     fmt.Sprintf("Subscribed to creator - %s tier", tier.TierName),
		}
		if err := tx.Create(&fanRow).Error; err != nil {
			return err
		}

		creatorRow := models.Transaction{
			UserID:          input.CreatorID,
			TransactionType: models.TransactionSubscriptionSale,
			Amount:          tier.Price,
			Status:          models.TransactionCompleted,
			Description:     fmt.Sprintf("Subscription earnings - %s tier", tier.TierName),
		}
		return tx.Create(&creatorRow).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"error": "Already subscribed to this creator"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Ledger write failed in Subscribe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscribed to creator successfully in Subscribe")
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Subscribed successfully",
		"subscription": subscription,
	})
}

// @Summary Unsubscribe from a creator
// @Description Cancel the caller's active subscription to one creator
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Unsubscribed successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Failure 500 {object} map[string]string "error: Failed to unsubscribe"
// @Router /subscriptions/unsubscribe/{creatorId} [post]
func Unsubscribe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	creatorID := c.Param("creatorId")

	result := db.DB.Model(&models.FanSubscription{}).
		Where("fan_id = ? AND creator_id = ? AND status = ?", userID, creatorID, models.FanSubscriptionActive).
		Update("status", models.FanSubscriptionCanceled)
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error canceling subscription in Unsubscribe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	utils.LogSuccessWithUser(userID, "Unsubscribed successfully in Unsubscribe")
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// @Summary List the caller's subscriptions
// @Description Return all the caller's fan subscriptions, newest first
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "subscriptions: list"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions/my-subscriptions [get]
func GetMySubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subs []models.FanSubscription
	err := db.DB.Where("fan_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// @Summary List the caller's subscribers
// @Description Return the active subscribers of the calling creator
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "subscribers: list, total: count"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Creator access required"
// @Router /subscriptions/my-subscribers [get]
func GetMySubscribers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subs []models.FanSubscription
	err := db.DB.Where("creator_id = ? AND status = ?", userID, models.FanSubscriptionActive).
		Order("created_at DESC").Find(&subs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subs, "total": len(subs)})
}

// @Summary Check subscription status for one creator
// @Description Tell whether the caller has an active subscription to the creator
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "subscribed: bool"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions/status/{creatorId} [get]
func GetSubscriptionStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	creatorID := c.Param("creatorId")

	var sub models.FanSubscription
	err := db.DB.Where("fan_id = ? AND creator_id = ? AND status = ?",
		userID, creatorID, models.FanSubscriptionActive).First(&sub).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"subscribed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": true, "subscription": sub})
}
