package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Inventaire is the fixed inventory snapshot recorded at check-in and
// check-out. Field names are the external wire contract and must not change.
type Inventaire struct {
	LitsSimples             int  `json:"litsSimples"`
	LitsDoubles             int  `json:"litsDoubles"`
	MatelasSupplementaires  int  `json:"matelasSupplementaires"`
	Oreillers               int  `json:"oreillers"`
	Tables                  int  `json:"tables"`
	Chaises                 int  `json:"chaises"`
	DrapsPropres            int  `json:"drapsPropres"`
	DrapsHousse             int  `json:"drapsHousse"`
	Couvertures             int  `json:"couvertures"`
	Television              bool `json:"television"`
	TelecommandeTv          bool `json:"telecommandeTv"`
	Climatiseur             bool `json:"climatiseur"`
	TelecommandeClimatiseur bool `json:"telecommandeClimatiseur"`
	RecepteurTv             bool `json:"recepteurTv"`
	TelecommandeRecepteur   bool `json:"telecommandeRecepteur"`
	Assiettes               int  `json:"assiettes"`
	Verres                  int  `json:"verres"`
	Couverts                int  `json:"couverts"`
	Casseroles              int  `json:"casseroles"`
	Poeles                  int  `json:"poeles"`
	Refrigerateur           bool `json:"refrigerateur"`
	Rideaux                 bool `json:"rideaux"`
	Lampes                  bool `json:"lampes"`
	BalaiSerpilliere        bool `json:"balaiSerpilliere"`
}

// ToJSON marshals the snapshot for storage in a JSON column.
func (inv Inventaire) ToJSON() datatypes.JSON {
	raw, _ := json.Marshal(inv)
	return datatypes.JSON(raw)
}

// InventaireFromJSON is best-effort: a missing or malformed column yields the
// zero snapshot rather than an error.
func InventaireFromJSON(raw datatypes.JSON) Inventaire {
	var inv Inventaire
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &inv)
	}
	return inv
}

// CheckIn records a guest arrival with its accommodation payment and the
// inventory state of the house at that moment.
type CheckIn struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	ReservationID  string         `gorm:"column:reservation_id;size:64;index" json:"reservationId"`
	HouseID        string         `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	GuestName      string         `gorm:"column:guest_name;size:255;not null" json:"guestName"`
	Phone          string         `gorm:"size:64" json:"phone"`
	Email          string         `gorm:"size:150" json:"email"`
	ArrivalDate    time.Time      `gorm:"column:arrival_date;not null" json:"arrivalDate"`
	DepartureDate  time.Time      `gorm:"column:departure_date;not null" json:"departureDate"`
	AdvancePaid    float64        `gorm:"column:advance_paid;default:0" json:"advancePaid"`
	CheckinPayment float64        `gorm:"column:checkin_payment;default:0" json:"checkinPayment"`
	TotalAmount    float64        `gorm:"column:total_amount;not null" json:"totalAmount"`
	Inventory      datatypes.JSON `gorm:"column:inventory" json:"inventory"`
	Manager        string         `gorm:"size:255" json:"manager"`
	Remarks        string         `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	House House `gorm:"foreignKey:HouseID" json:"-"`
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CheckOut records a guest departure together with the exit inventory and any
// damage notes. At most one per check-in in the normal flow.
type CheckOut struct {
	ID                string         `gorm:"primaryKey;size:64" json:"id"`
	CheckinID         string         `gorm:"column:checkin_id;size:64;index;not null" json:"checkinId"`
	HouseID           string         `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	GuestName         string         `gorm:"column:guest_name;size:255;not null" json:"guestName"`
	CheckoutDate      time.Time      `gorm:"column:checkout_date;not null" json:"checkoutDate"`
	CheckoutInventory datatypes.JSON `gorm:"column:checkout_inventory" json:"checkoutInventory"`
	DamagesNotes      string         `gorm:"column:damages_notes;type:text" json:"damagesNotes"`
	Manager           string         `gorm:"size:255" json:"manager"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *CheckOut) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
