package models

import (
	"time"
)

type CreatorSubscriptionStatus string

const (
	CreatorSubscriptionActive   CreatorSubscriptionStatus = "active"
	CreatorSubscriptionPastDue  CreatorSubscriptionStatus = "past_due"
	CreatorSubscriptionCanceled CreatorSubscriptionStatus = "canceled"
)

// CreatorSubscription is the creator's own platform-access subscription,
// distinct from fan subscriptions. Its lifecycle is driven entirely by
// payment-provider events, keyed by the provider's subscription reference.
type CreatorSubscription struct {
	ID                   string                    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID            string                    `json:"creatorId" gorm:"type:uuid;not null;index"`
	StripeSubscriptionId string                    `json:"stripeSubscriptionId" gorm:"uniqueIndex"`
	StripeCustomerId     string                    `json:"stripeCustomerId"`
	Status               CreatorSubscriptionStatus `json:"status" gorm:"type:varchar(20);not null"`
	CurrentPeriodEnd     *time.Time                `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool                      `json:"cancelAtPeriodEnd" gorm:"default:false"`
	CreatedAt            time.Time                 `json:"createdAt"`
	UpdatedAt            time.Time                 `json:"updatedAt"`
}

func (CreatorSubscription) TableName() string {
	return "creator_subscriptions"
}
