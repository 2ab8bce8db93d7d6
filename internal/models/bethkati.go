package models

import (
	"time"

	"gorm.io/gorm"
)

// Bethkati is one issue of the parish newsletter, stored as a hosted PDF
type Bethkati struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	URL   string `gorm:"type:text" json:"url"`
	Year  int    `json:"year"`
	Month string `gorm:"type:varchar(20)" json:"month"`
}
