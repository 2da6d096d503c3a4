package content

import (
	"net/http"
	"strconv"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Create a content post
// @Description Publish a new post; paid posts require a price and an active platform subscription
// @Tags content
// @Accept json
// @Produce json
// @Param content body models.ContentPostCreate true "Content information"
// @Security BearerAuth
// @Success 201 {object} models.ContentPost
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Active platform subscription required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content [post]
func CreateContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.ContentPostCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	switch input.ContentType {
	case models.ContentImage, models.ContentVideo, models.ContentText:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content type must be image, video or text"})
		return
	}

	if input.IsPaid {
		if input.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price required for paid content"})
			return
		}
		if !utils.ValidatePrice(*input.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be at least 0.50"})
			return
		}

		// Publishing paid content is gated on the creator's own platform
		// subscription being active.
		var platformSub models.CreatorSubscription
		err := db.DB.Where("creator_id = ? AND status = ?", userID, models.CreatorSubscriptionActive).
			First(&platformSub).Error
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Active platform subscription required to publish paid content"})
			return
		}
	}

	post := models.ContentPost{
		CreatorID:    userID.(string),
		ContentType:  input.ContentType,
		Caption:      input.Caption,
		IsPaid:       input.IsPaid,
		MediaURLs:    input.MediaURLs,
		ThumbnailURL: input.ThumbnailURL,
		IsPublished:  true,
	}
	if input.IsPaid {
		post.Price = input.Price
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating content in CreateContent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating content"})
		return
	}

	utils.LogSuccessWithUser(userID, "Content created successfully in CreateContent")
	c.JSON(http.StatusCreated, post)
}

// @Summary Get the content feed
// @Description Retrieve recent posts with per-viewer lock, like and purchase flags
// @Tags content
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "posts: list of posts"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/feed [get]
func GetFeed(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var posts []models.ContentPost
	err := db.DB.Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving the feed"})
		return
	}

	views := make([]models.ContentView, 0, len(posts))
	for _, post := range posts {
		view := models.ResolveContentAccess(userID.(string), post, hasPurchased(userID.(string), post.ID), hasLiked(userID.(string), post.ID))
		attachCreator(&view)
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// @Summary Get a creator's published posts
// @Description Retrieve the published posts of one creator (metadata only, media excluded)
// @Tags content
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{} "posts: list of posts"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/creator/{creatorId} [get]
func GetCreatorContent(c *gin.Context) {
	creatorID := c.Param("creatorId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var posts []models.ContentPost
	err := db.DB.
		Select("id", "creator_id", "content_type", "caption", "is_paid", "price", "thumbnail_url", "view_count", "like_count", "created_at").
		Where("creator_id = ? AND is_published = ?", creatorID, true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// @Summary Get a content post
// @Description Retrieve one post; media is stripped unless the viewer is entitled, and granted reads count one view
// @Tags content
// @Produce json
// @Param contentId path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "post: content view"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{contentId} [get]
func GetContentByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	contentID := c.Param("contentId")

	var post models.ContentPost
	if err := db.DB.First(&post, "id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	purchased := hasPurchased(userID.(string), post.ID)
	liked := hasLiked(userID.(string), post.ID)
	view := models.ResolveContentAccess(userID.(string), post, purchased, liked)
	attachCreator(&view)

	if !view.IsLocked {
		// Every granted read counts; there is no per-viewer dedup
		if err := db.DB.Model(&models.ContentPost{}).
			Where("id = ?", post.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error incrementing view count in GetContentByID")
		} else {
			view.ViewCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{"post": view})
}

// @Summary Delete a content post
// @Description Delete one of the caller's own posts
// @Tags content
// @Produce json
// @Param contentId path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Content deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{contentId} [delete]
func DeleteContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	contentID := c.Param("contentId")

	var post models.ContentPost
	if err := db.DB.First(&post, "id = ? AND creator_id = ?", contentID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found or unauthorized"})
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting content in DeleteContent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

func hasPurchased(userID, contentID string) bool {
	var purchase models.ContentPurchase
	return db.DB.Where("fan_id = ? AND content_id = ?", userID, contentID).
		First(&purchase).Error == nil
}

func hasLiked(userID, contentID string) bool {
	var like models.Like
	return db.DB.Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&like).Error == nil
}

func attachCreator(view *models.ContentView) {
	var profile models.Profile
	if err := db.DB.Select("display_name", "username", "avatar_url").
		Where("user_id = ?", view.CreatorID).First(&profile).Error; err != nil {
		return
	}
	view.CreatorName = profile.DisplayName
	view.CreatorUsername = profile.Username
	view.CreatorAvatar = profile.AvatarURL
}
