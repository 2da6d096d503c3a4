package likes

import (
	"net/http"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle like on a content post
// @Description Add or remove a like; the like row and the cached counter move in one transaction
// @Tags content
// @Produce json
// @Param contentId path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "liked: whether the post is now liked"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{contentId}/like [post]
func ToggleLike(c *gin.Context) {
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

	var like models.Like
	result := db.DB.Where("user_id = ? AND content_id = ?", userID, contentID).First(&like)

	if result.Error == nil {
		// Like exists: remove it and decrement the counter together
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			return tx.Model(&models.ContentPost{}).
				Where("id = ?", contentID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		})
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error removing like in ToggleLike")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Content unliked", "liked": false})
		return
	}

	like = models.Like{
		UserID:    userID.(string),
		ContentID: contentID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContentPost{}).
			Where("id = ?", contentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error adding like in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content liked", "liked": true})
}
