package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaintenanceStatusResolved   = "resolue"
	MaintenanceStatusUnresolved = "non-resolue"
)

// MaintenanceType is the static catalog of issue kinds (electricite,
// plomberie, ...). Seeded at startup.
type MaintenanceType struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Label string `gorm:"size:255;not null" json:"label"`
}

type MaintenanceIssue struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	HouseID         string    `gorm:"column:house_id;size:64;index;not null" json:"houseId"`
	IssueType       string    `gorm:"column:issue_type;size:64;not null" json:"issueType"`
	ReportedAt      time.Time `gorm:"column:reported_at;not null" json:"reportedAt"`
	AssignedTo      string    `gorm:"column:assigned_to;size:255" json:"assignedTo"`
	Comment         string    `gorm:"type:text" json:"comment"`
	Status          string    `gorm:"size:32;default:'non-resolue'" json:"status"`
	PhotoIssueURL   string    `gorm:"column:photo_issue_url;size:512" json:"photoIssueUrl"`
	PhotoInvoiceURL string    `gorm:"column:photo_invoice_url;size:512" json:"photoInvoiceUrl"`
	LaborCost       *float64  `gorm:"column:labor_cost" json:"laborCost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	House House `gorm:"foreignKey:HouseID" json:"-"`
}

func (m *MaintenanceIssue) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Resolved reports whether the issue is in the resolved state.
func (m *MaintenanceIssue) Resolved() bool {
	return m.Status == MaintenanceStatusResolved
}
