package models

import (
	"time"

	"gorm.io/gorm"
)

// Family groups parishoners under one household with an optional head
type Family struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name   string `gorm:"type:varchar(255)" json:"name"`
	HeadID *uint  `gorm:"index" json:"head_id,omitempty"`

	// Relationships
	Head    *Parishoner  `gorm:"foreignKey:HeadID" json:"head,omitempty"`
	Members []Parishoner `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}
