package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChecklistCategory struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

// ChecklistItem is one cleaning/verification/maintenance step of a house's
// checklist. Type is 'nettoyage', 'verification' or 'entretien'.
type ChecklistItem struct {
	ID              string `gorm:"primaryKey;size:64" json:"id"`
	HouseID         string `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	StepNumber      int    `gorm:"column:step_number" json:"stepNumber"`
	CategoryID      int    `gorm:"column:category_id;index;not null" json:"categoryId"`
	Description     string `gorm:"type:text;not null" json:"description"`
	ProductRequired string `gorm:"column:product_required;size:255" json:"productRequired"`
	Type            string `gorm:"size:64;not null" json:"type"`

	Category ChecklistCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// HouseChecklistStatus is the per-(house, item) completion flag.
type HouseChecklistStatus struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	HouseID     string     `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	ItemID      string     `gorm:"column:item_id;size:64;index;not null" json:"itemId"`
	IsCompleted bool       `gorm:"column:is_completed;default:false" json:"isCompleted"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt"`
	UpdatedBy   string     `gorm:"column:updated_by;size:64" json:"updatedBy"`
}

func (s *HouseChecklistStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// HouseCategoryStatus is the per-(house, category) readiness gate. It is set
// manually, not derived from item completion; a house is ready when every
// category carries is_ready.
type HouseCategoryStatus struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	HouseID    string     `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	CategoryID int        `gorm:"column:category_id;index;not null" json:"categoryId"`
	IsReady    bool       `gorm:"column:is_ready;default:false" json:"isReady"`
	ReadyAt    *time.Time `gorm:"column:ready_at" json:"readyAt"`
}

func (s *HouseCategoryStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
