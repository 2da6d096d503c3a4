package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentText  ContentType = "text"
)

type ContentPost struct {
	ID           string                     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID    string                     `json:"creatorId" gorm:"type:uuid;not null;index"`
	ContentType  ContentType                `json:"contentType" gorm:"type:varchar(10);not null"`
	Caption      string                     `json:"caption"`
	IsPaid       bool                       `json:"isPaid" gorm:"default:false"`
	Price        *decimal.Decimal           `json:"price" gorm:"type:numeric(10,2)"`
	MediaURLs    datatypes.JSONSlice[string] `json:"mediaUrls" gorm:"column:media_urls"`
	ThumbnailURL string                     `json:"thumbnailUrl" gorm:"column:thumbnail_url"`
	IsPublished  bool                       `json:"isPublished" gorm:"default:true"`
	ViewCount    int64                      `json:"viewCount" gorm:"default:0"`
	LikeCount    int64                      `json:"likeCount" gorm:"default:0"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// ContentPostCreate model for publishing a new post
// @Description model for creating a content post
type ContentPostCreate struct {
	ContentType  ContentType      `json:"contentType" binding:"required"`
	Caption      string           `json:"caption" binding:"max=2000"`
	IsPaid       bool             `json:"isPaid"`
	Price        *decimal.Decimal `json:"price"`
	MediaURLs    []string         `json:"mediaUrls"`
	ThumbnailURL string           `json:"thumbnailUrl"`
}

func (ContentPost) TableName() string {
	return "content_posts"
}
