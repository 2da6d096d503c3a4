package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionContentPurchase  TransactionType = "content_purchase"
	TransactionContentSale      TransactionType = "content_sale"
	TransactionMessagePurchase  TransactionType = "message_purchase"
	TransactionMessageSale      TransactionType = "message_sale"
	TransactionSubscription     TransactionType = "subscription"
	TransactionSubscriptionSale TransactionType = "subscription_sale"
)

const TransactionCompleted = "completed"

// Transaction is one append-only ledger row. Rows are never updated or
// deleted; every earnings figure is a SUM over this table at read time.
type Transaction struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID          string          `json:"userId" gorm:"type:uuid;not null;index"`
	TransactionType TransactionType `json:"transactionType" gorm:"type:varchar(30);not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Status          string          `json:"status" gorm:"type:varchar(20);default:'completed'"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Earnings is the derived creator earnings aggregate
type Earnings struct {
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	ContentEarnings decimal.Decimal `json:"contentEarnings"`
	MessageEarnings decimal.Decimal `json:"messageEarnings"`
	TotalSales      int64           `json:"totalSales"`
}

func (Transaction) TableName() string {
	return "transactions"
}
