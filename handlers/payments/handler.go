package payments

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

// @Summary Purchase a PPV content post
// @Description Unlock a paid post; records the purchase and both ledger rows in one transaction
// @Tags payments
// @Accept json
// @Produce json
// @Param purchase body models.PurchaseRequest true "Content ID and amount"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "unlocked: true"
// @Failure 400 {object} map[string]string "error: free content or invalid amount"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 409 {object} map[string]string "error: Content already purchased"
// @Failure 500 {object} map[string]string "error: Failed to purchase content"
// @Router /payments/purchase-content [post]
func PurchaseContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	if _, err := uuid.Parse(input.ContentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID"})
		return
	}

	// Fast-path check; the unique index on (fan_id, content_id) is the
	// authoritative guard against concurrent double purchase.
	var existing models.ContentPurchase
	if err := db.DB.Where("fan_id = ? AND content_id = ?", userID, input.ContentID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Content already purchased"})
		return
	}

	var content models.ContentPost
	if err := db.DB.First(&content, "id = ?", input.ContentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	if !content.IsPaid || content.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This content is free"})
		return
	}

	if !input.Amount.Equal(*content.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		purchase := models.ContentPurchase{
			FanID:     userID.(string),
			ContentID: input.ContentID,
			Amount:    input.Amount,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		fanRow := models.Transaction{
			UserID:          userID.(string),
			TransactionType: models.TransactionContentPurchase,
			Amount:          input.Amount,
			Status:          models.TransactionCompleted,
			Description:     "Purchased PPV content",
		}
		if err := tx.Create(&fanRow).Error; err != nil {
			return err
		}

		// Creator receives 100% of the amount
		creatorRow := models.Transaction{
			UserID:          content.CreatorID,
			TransactionType: models.TransactionContentSale,
			Amount:          input.Amount,
			Status:          models.TransactionCompleted,
			Description:     "Content sale earnings",
		}
		return tx.Create(&creatorRow).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Content already purchased"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Ledger write failed in PurchaseContent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase content"})
		return
	}

	utils.LogSuccessWithUser(userID, "Content purchased successfully in PurchaseContent")
	c.JSON(http.StatusOK, gin.H{"message": "Content purchased successfully", "unlocked": true})
}

// @Summary Purchase a paid message
// @Description Unlock a paid message; records the purchase, flips is_unlocked and writes both ledger rows in one transaction
// @Tags payments
// @Accept json
// @Produce json
// @Param purchase body models.PurchaseRequest true "Message ID and amount"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "unlocked: true"
// @Failure 400 {object} map[string]string "error: free message or invalid amount"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Message not found"
// @Failure 409 {object} map[string]string "error: Message already purchased"
// @Failure 500 {object} map[string]string "error: Failed to purchase message"
// @Router /payments/purchase-message [post]
func PurchaseMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	if _, err := uuid.Parse(input.MessageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var existing models.MessagePurchase
	if err := db.DB.Where("fan_id = ? AND message_id = ?", userID, input.MessageID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Message already purchased"})
		return
	}

	var message models.Message
	if err := db.DB.First(&message, "id = ?", input.MessageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if !message.IsPaid || message.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This message is free"})
		return
	}

	if !input.Amount.Equal(*message.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		purchase := models.MessagePurchase{
			FanID:     userID.(string),
			MessageID: input.MessageID,
			Amount:    input.Amount,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Message{}).
			Where("id = ?", input.MessageID).
			Update("is_unlocked", true).Error; err != nil {
			return err
		}

		fanRow := models.Transaction{
			UserID:          userID.(string),
			TransactionType: models.TransactionMessagePurchase,
			Amount:          input.Amount,
			Status:          models.TransactionCompleted,
			Description:     "Purchased paid message",
		}
		if err := tx.Create(&fanRow).Error; err != nil {
			return err
		}

		creatorRow := models.Transaction{
			UserID:          message.SenderID,
			TransactionType: models.TransactionMessageSale,
			Amount:          input.Amount,
			Status:          models.TransactionCompleted,
			Description:     "Paid message earnings",
		}
		return tx.Create(&creatorRow).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Message already purchased"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Ledger write failed in PurchaseMessage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase message"})
		return
	}

	utils.LogSuccessWithUser(userID, "Message purchased successfully in PurchaseMessage")
	c.JSON(http.StatusOK, gin.H{"message": "Message purchased successfully", "unlocked": true})
}

// @Summary Get creator earnings
// @Description Derive all earnings figures from the transaction ledger; nothing is cached
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Earnings
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Failed to get earnings"
// @Router /payments/earnings [get]
func GetEarnings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var row struct {
		TotalEarnings   *decimal.Decimal
		ContentEarnings *decimal.Decimal
		MessageEarnings *decimal.Decimal
		TotalSales      int64
	}

	err := db.DB.Raw(`SELECT
		SUM(CASE WHEN transaction_type IN ('content_sale', 'message_sale') THEN amount ELSE 0 END) AS total_earnings,
		SUM(CASE WHEN transaction_type = 'content_sale' THEN amount ELSE 0 END) AS content_earnings,
		SUM(CASE WHEN transaction_type = 'message_sale' THEN amount ELSE 0 END) AS message_earnings,
		COUNT(CASE WHEN transaction_type IN ('content_sale', 'message_sale') THEN id END) AS total_sales
		FROM transactions
		WHERE user_id = ? AND status = ?`, userID, models.TransactionCompleted).
		Scan(&row).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error computing earnings in GetEarnings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get earnings"})
		return
	}

	earnings := models.Earnings{TotalSales: row.TotalSales}
	if row.TotalEarnings != nil {
		earnings.TotalEarnings = *row.TotalEarnings
	}
	if row.ContentEarnings != nil {
		earnings.ContentEarnings = *row.ContentEarnings
	}
	if row.MessageEarnings != nil {
		earnings.MessageEarnings = *row.MessageEarnings
	}

	c.JSON(http.StatusOK, earnings)
}

// @Summary Get transaction history
// @Description List the caller's ledger rows, newest first
// @Tags payments
// @Produce json
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "transactions: list"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Failed to get transactions"
// @Router /payments/transactions [get]
func GetTransactions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var transactions []models.Transaction
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
