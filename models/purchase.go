package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContentPurchase is the PPV unlock record for one fan and one post.
// The composite unique index is the real double-purchase guard: the
// check-then-insert in the handler is only the fast path.
type ContentPurchase struct {
	ID        string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FanID     string          `json:"fanId" gorm:"type:uuid;not null;uniqueIndex:idx_fan_content"`
	ContentID string          `json:"contentId" gorm:"type:uuid;not null;uniqueIndex:idx_fan_content"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MessagePurchase mirrors ContentPurchase for paid messages
type MessagePurchase struct {
	ID        string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FanID     string          `json:"fanId" gorm:"type:uuid;not null;uniqueIndex:idx_fan_message"`
	MessageID string          `json:"messageId" gorm:"type:uuid;not null;uniqueIndex:idx_fan_message"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PurchaseRequest model for purchasing a post or a message
type PurchaseRequest struct {
	ContentID string          `json:"contentId"`
	MessageID string          `json:"messageId"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

func (ContentPurchase) TableName() string {
	return "content_purchases"
}

func (MessagePurchase) TableName() string {
	return "message_purchases"
}
