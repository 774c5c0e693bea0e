package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	HouseID      string    `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	GuestName    string    `gorm:"column:guest_name;size:255;not null" json:"guestName"`
	Phone        string    `gorm:"size:64" json:"phone"`
	Email        string    `gorm:"size:150" json:"email"`
	CheckinDate  time.Time `gorm:"column:checkin_date;not null" json:"checkinDate"`
	CheckoutDate time.Time `gorm:"column:checkout_date;not null" json:"checkoutDate"`
	AdvancePaid  float64   `gorm:"column:advance_paid;default:0" json:"advancePaid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	House House `gorm:"foreignKey:HouseID" json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
