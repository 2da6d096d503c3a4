package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Message represents a direct message between two users, optionally paywalled
type Message struct {
	ID          string                     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID    string                     `json:"senderId" gorm:"type:uuid;not null;index"`
	RecipientID string                     `json:"recipientId" gorm:"type:uuid;not null;index"`
	Content     string                     `json:"content"`
	IsPaid      bool                       `json:"isPaid" gorm:"default:false"`
	Price       *decimal.Decimal           `json:"price" gorm:"type:numeric(10,2)"`
	MediaURLs   datatypes.JSONSlice[string] `json:"mediaUrls" gorm:"column:media_urls"`
	IsUnlocked  bool                       `json:"isUnlocked" gorm:"default:false"`
	IsRead      bool                       `json:"isRead" gorm:"default:false"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// MessageCreate model for sending a message
// @Description model for sending a direct message
type MessageCreate struct {
	RecipientID string           `json:"recipientId" binding:"required"`
	Content     string           `json:"content" binding:"max=2000"`
	IsPaid      bool             `json:"isPaid"`
	Price       *decimal.Decimal `json:"price"`
	MediaURLs   []string         `json:"mediaUrls"`
}

func (Message) TableName() string {
	return "messages"
}
