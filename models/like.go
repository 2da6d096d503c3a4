package models

import (
	"time"
)

// Like rows are the source of truth for like_count; the counter column on
// content_posts is a cache mutated in the same transaction as the row.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_content_like"`
	ContentID string    `json:"contentId" gorm:"type:uuid;not null;uniqueIndex:idx_user_content_like"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
