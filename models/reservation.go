package models

import (
	"fmt"
	"time"

	"bukarum/utils"

	"gorm.io/datatypes"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint   `gorm:"index;not null" json:"userId"`
	Locator string `gorm:"size:32;uniqueIndex;not null" json:"locator"`

	CheckIn  datatypes.Date `gorm:"column:check_in;not null;index" json:"checkIn"`
	CheckOut datatypes.Date `gorm:"column:check_out;not null;index" json:"checkOut"`

	CardProfileID uint   `gorm:"index;not null" json:"cardProfileId"`
	CardNumber    int64  `gorm:"not null" json:"cardNumber"`
	ExpiryMonth   int    `gorm:"not null" json:"expiryMonth"`
	ExpiryYear    int    `gorm:"not null" json:"expiryYear"`
	Notes         string `gorm:"size:500" json:"notes,omitempty"`

	RoomID       uint           `gorm:"index;not null" json:"roomId"`
	BookedOn     datatypes.Date `gorm:"column:booked_on;not null" json:"bookedOn"`
	NightlyPrice float64        `gorm:"type:decimal(15,2);not null" json:"nightlyPrice"`

	CreatedAt time.Time `json:"createdAt"`

	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CardProfile CardProfile `gorm:"foreignKey:CardProfileID;constraint:OnDelete:CASCADE" json:"cardProfile"`
	Room        Room        `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room"`
}

func (r Reservation) CheckInDate() time.Time  { return time.Time(r.CheckIn) }
func (r Reservation) CheckOutDate() time.Time { return time.Time(r.CheckOut) }
func (r Reservation) BookedOnDate() time.Time { return time.Time(r.BookedOn) }

// Nights is the whole-day difference between check-out and check-in. Nothing
// stops it from being zero or negative when the dates are inverted.
func (r Reservation) Nights() int {
	return utils.Nights(r.CheckInDate(), r.CheckOutDate())
}

// TotalPrice uses the snapshotted nightly price, not the current catalog price.
func (r Reservation) TotalPrice() float64 {
	return r.NightlyPrice * float64(r.Nights())
}

// Overlaps reports whether [checkIn, checkOut] intersects this reservation as a
// closed interval. A stay that starts on this reservation's check-out day
// conflicts.
func (r Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return !utils.DateOnly(r.CheckInDate()).After(utils.DateOnly(checkOut)) &&
		!utils.DateOnly(r.CheckOutDate()).Before(utils.DateOnly(checkIn))
}

func (r Reservation) String() string {
	return fmt.Sprintf("%s - from %s to %s",
		r.Room.RoomType.Name,
		r.CheckInDate().Format("2006-01-02"),
		r.CheckOutDate().Format("2006-01-02"))
}
