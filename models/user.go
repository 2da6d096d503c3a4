package models

import (
	"time"
)

type Role string

const (
	CreatorRole Role = "CREATOR"
	FanRole     Role = "FAN"
)

type User struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Password         string     `json:"-" gorm:"not null"`
	Role             Role       `json:"role" gorm:"type:varchar(10);not null"`
	IsActive         bool       `json:"isActive" gorm:"default:true"`
	IsVerified       bool       `json:"isVerified" gorm:"default:false"`
	StripeCustomerId string     `json:"stripeCustomerId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

// UserRegister model for creating an account with its profile
// @Description model for registering a new account
type UserRegister struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        Role   `json:"role" binding:"required"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100"`
	Username    string `json:"username" binding:"required,min=3,max=50"`
}

// UserLogin model for the login payload
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (User) TableName() string {
	return "users"
}
