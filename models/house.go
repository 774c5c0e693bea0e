package models

import "time"

// House is the root of all per-property data. IDs are human-readable slugs
// (e.g. "maison-1") and houses are never deleted in the normal flow.
type House struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
