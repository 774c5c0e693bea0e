package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OperationTypeEntree = "entree"
	OperationTypeSortie = "sortie"

	OriginReservation = "reservation"
	OriginMaintenance = "maintenance"
	OriginCheckin     = "checkin"
	OriginManual      = "manuel"
)

// FinancialOperation is a single dated, typed monetary record. Rows derived
// from a reservation, check-in or maintenance resolution are non-editable and
// carry exactly one back-reference matching their origin; manual rows are
// freely mutable.
type FinancialOperation struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	HouseID     string    `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Motif       string    `gorm:"size:512;not null" json:"motif"`
	Montant     float64   `gorm:"not null" json:"montant"`
	Origine     string    `gorm:"size:32;not null" json:"origine"`
	PieceJointe string    `gorm:"column:piece_jointe;size:512" json:"pieceJointe"`
	Editable    bool      `gorm:"not null" json:"editable"`

	// Back-references used by the ledger synchronizer.
	ReservationID *string `gorm:"column:reservation_id;size:64;index" json:"reservationId"`
	CheckinID     *string `gorm:"column:checkin_id;size:64;index" json:"checkinId"`
	MaintenanceID *string `gorm:"column:maintenance_id;size:64;index" json:"maintenanceId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	House House `gorm:"foreignKey:HouseID" json:"-"`
}

func (op *FinancialOperation) BeforeCreate(tx *gorm.DB) error {
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	return nil
}
