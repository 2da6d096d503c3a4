package messages

import (
	"net/http"
	"strconv"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Conversation summarizes the latest exchange with one counterpart
type Conversation struct {
	OtherUserID     string `json:"otherUserId"`
	DisplayName     string `json:"displayName"`
	Username        string `json:"username"`
	AvatarURL       string `json:"avatarUrl"`
	LastMessage     string `json:"lastMessage"`
	LastMessageTime string `json:"lastMessageTime"`
	UnreadCount     int64  `json:"unreadCount"`
}

// @Summary Send a message
// @Description Send a direct message; paid messages require a price and start locked for the recipient
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.MessageCreate true "Message information"
// @Security BearerAuth
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Recipient not found"
// @Failure 500 {object} map[string]string "error: Error creating message"
// @Router /messages [post]
func SendMessage(c *gin.Context) {
	senderID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.MessageCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	if input.IsPaid {
		if input.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price required for paid messages"})
			return
		}
		if !utils.ValidatePrice(*input.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be at least 0.50"})
			return
		}
	}

	var recipient models.User
	if result := db.DB.Where("id = ? AND is_active = ?", input.RecipientID, true).First(&recipient); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error verifying recipient"})
		}
		return
	}

	message := models.Message{
		SenderID:    senderID.(string),
		RecipientID: input.RecipientID,
		Content:     input.Content,
		IsPaid:      input.IsPaid,
		MediaURLs:   input.MediaURLs,
		// Free messages are unlocked at creation; paid ones flip exactly
		// once, on purchase.
		IsUnlocked: !input.IsPaid,
	}
	if input.IsPaid {
		message.Price = input.Price
	}

	if result := db.DB.Create(&message); result.Error != nil {
		utils.LogErrorWithUser(senderID, result.Error, "Error creating message in SendMessage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// @Summary Get conversations
// @Description List the latest message and unread count per counterpart
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "conversations: list"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error retrieving conversations"
// @Router /messages/conversations [get]
func GetConversations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var msgs []models.Message
	result := db.DB.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving conversations"})
		return
	}

	seen := make(map[string]bool)
	conversations := make([]Conversation, 0)

	for _, msg := range msgs {
		otherID := msg.SenderID
		if msg.SenderID == userID.(string) {
			otherID = msg.RecipientID
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true

		var unread int64
		db.DB.Model(&models.Message{}).
			Where("recipient_id = ? AND sender_id = ? AND is_read = ?", userID, otherID, false).
			Count(&unread)

		conv := Conversation{
			OtherUserID:     otherID,
			LastMessage:     msg.Content,
			LastMessageTime: msg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UnreadCount:     unread,
		}

		var profile models.Profile
		if err := db.DB.Select("display_name", "username", "avatar_url").
			Where("user_id = ?", otherID).First(&profile).Error; err == nil {
			conv.DisplayName = profile.DisplayName
			conv.Username = profile.Username
			conv.AvatarURL = profile.AvatarURL
		}

		conversations = append(conversations, conv)
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// @Summary Get the thread with one user
// @Description List messages both ways with entitlement applied per message; fetching marks received messages read
// @Tags messages
// @Produce json
// @Param userId path string true "Other user ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "messages: list"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error retrieving messages"
// @Router /messages/thread/{userId} [get]
func GetThread(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	otherID := c.Param("userId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var msgs []models.Message
	result := db.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, otherID, otherID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&msgs)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving messages"})
		return
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		var purchase models.MessagePurchase
		purchased := db.DB.Where("fan_id = ? AND message_id = ?", userID, msg.ID).
			First(&purchase).Error == nil

		view := models.ResolveMessageAccess(userID.(string), msg, purchased)

		var profile models.Profile
		if err := db.DB.Select("display_name", "avatar_url").
			Where("user_id = ?", msg.SenderID).First(&profile).Error; err == nil {
			view.SenderName = profile.DisplayName
			view.SenderAvatar = profile.AvatarURL
		}

		views = append(views, view)
	}

	err := db.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", userID, otherID, false).
		Update("is_read", true).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error marking messages read in GetThread")
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// @Summary Mark a message as read
// @Description Mark one received message as read
// @Tags messages
// @Produce json
// @Param messageId path string true "Message ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Message marked as read"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /messages/{messageId}/read [put]
func MarkMessageRead(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID := c.Param("messageId")

	err := db.DB.Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", messageID, userID).
		Update("is_read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error marking message as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// @Summary Delete a message
// @Description Delete one of the caller's own sent messages
// @Tags messages
// @Produce json
// @Param messageId path string true "Message ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Message deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Message not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /messages/{messageId} [delete]
func DeleteMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID := c.Param("messageId")

	var message models.Message
	if err := db.DB.First(&message, "id = ? AND sender_id = ?", messageID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found or unauthorized"})
		return
	}

	if err := db.DB.Delete(&message).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting message in DeleteMessage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
