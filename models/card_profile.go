package models

// CardProfile is a card brand label picked on the booking form. It is never
// linked to a payment network.
type CardProfile struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
}
