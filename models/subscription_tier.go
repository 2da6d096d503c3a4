package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionTier is a creator-defined price level; a creator has 1 to 3 of them
type SubscriptionTier struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID   string          `json:"creatorId" gorm:"type:uuid;not null;uniqueIndex:idx_creator_tier_level"`
	TierName    string          `json:"tierName" gorm:"not null"`
	TierLevel   int             `json:"tierLevel" gorm:"not null;uniqueIndex:idx_creator_tier_level"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TierSpec model for one tier in a tier-set replacement
type TierSpec struct {
	TierLevel   int             `json:"tierLevel" binding:"required"`
	TierName    string          `json:"tierName" binding:"required,min=1,max=50"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
}

// TierReplace model for replacing a creator's whole tier set
type TierReplace struct {
	Tiers []TierSpec `json:"tiers" binding:"required"`
}

func (SubscriptionTier) TableName() string {
	return "subscription_tiers"
}
