package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FullName string `gorm:"size:255" json:"fullName"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	IsActive bool   `gorm:"not null" json:"isActive"`
	IsStaff  bool   `gorm:"default:false" json:"isStaff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
