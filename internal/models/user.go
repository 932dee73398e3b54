package models

import (
	"time"
)

// User is an account that can log in and manage a company.
type User struct {
	BaseModel
	FullName     string `json:"full_name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PhoneNumber  string `gorm:"uniqueIndex" json:"phone_number"`
	PasswordHash string `json:"-"`
	IsConfirmed  bool   `json:"is_confirmed"`
	IsStaff      bool   `json:"is_staff"`
}

// SMSVerification keeps track of OTP codes sent to users.
type SMSVerification struct {
	BaseModel
	PhoneNumber string     `gorm:"index" json:"phone_number"`
	Code        string     `json:"code"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Verified    bool       `json:"verified"`
	UsedAt      *time.Time `json:"used_at"`
}
