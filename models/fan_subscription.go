package models

import (
	"time"
)

type FanSubscriptionStatus string

const (
	FanSubscriptionActive   FanSubscriptionStatus = "active"
	FanSubscriptionCanceled FanSubscriptionStatus = "canceled"
)

// FanSubscription is a fan's recurring subscription to one creator's tier.
// At most one active row may exist per (fan, creator); the partial unique
// index created in db.InitDB is the authoritative guard.
type FanSubscription struct {
	ID                 string                `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FanID              string                `json:"fanId" gorm:"type:uuid;not null;index"`
	CreatorID          string                `json:"creatorId" gorm:"type:uuid;not null;index"`
	TierID             string                `json:"tierId" gorm:"type:uuid;not null"`
	Status             FanSubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	CurrentPeriodStart time.Time             `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time             `json:"currentPeriodEnd"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// SubscribeRequest model for subscribing to a creator tier
type SubscribeRequest struct {
	CreatorID string `json:"creatorId" binding:"required"`
	TierID    string `json:"tierId" binding:"required"`
}

func (FanSubscription) TableName() string {
	return "fan_subscriptions"
}
