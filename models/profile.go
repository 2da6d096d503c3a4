package models

import (
	"time"
)

// Profile holds the public identity of an account (1:1 with User)
type Profile struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string    `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName   string    `json:"displayName"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatarUrl" gorm:"column:avatar_url"`
	CoverImageURL string    `json:"coverImageUrl" gorm:"column:cover_image_url"`
	Location      string    `json:"location"`
	Website       string    `json:"website"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProfileUpdate model for updating the caller's own profile
type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
	Location    string `json:"location"`
	Website     string `json:"website"`
}

func (Profile) TableName() string {
	return "profiles"
}
