package models

import "time"

// RoomType is the category a room belongs to. It carries the nightly price that
// reservations snapshot at booking time.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:50;not null" json:"name"`
	Capacity     int     `gorm:"not null" json:"capacity"`
	NightlyPrice float64 `gorm:"type:decimal(12,2);not null" json:"nightlyPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
