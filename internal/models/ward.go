package models

import (
	"time"

	"gorm.io/gorm"
)

// Ward is a geographic subdivision of the parish used to group families
type Ward struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name string `gorm:"type:varchar(255);uniqueIndex" json:"name"`

	// Relationships
	Parishoners []Parishoner `gorm:"foreignKey:WardID" json:"parishoners,omitempty"`
}
