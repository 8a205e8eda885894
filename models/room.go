package models

import (
	"fmt"
	"time"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number     int  `gorm:"not null;index" json:"number"`
	RoomTypeID uint `gorm:"column:room_type_id;not null;index" json:"roomTypeId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID;constraint:OnDelete:CASCADE" json:"roomType"`
}

// Label renders the room as shown to guests, e.g. "07 - S" for room 7 of a
// "Standard" type.
func (r Room) Label() string {
	initial := ""
	for _, ch := range r.RoomType.Name {
		initial = string(ch)
		break
	}
	return fmt.Sprintf("%02d - %s", r.Number, initial)
}
