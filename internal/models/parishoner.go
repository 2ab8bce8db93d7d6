package models

import (
	"time"

	"gorm.io/gorm"
)

// Parishoner is a registered member of the parish, optionally linked to a
// login identity once their mobile number is verified
type Parishoner struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name   string `gorm:"type:varchar(255)" json:"name"`
	Mobile string `gorm:"type:varchar(15);uniqueIndex" json:"mobile"`

	WardID   *uint `gorm:"index" json:"ward_id,omitempty"`
	FamilyID *uint `gorm:"index" json:"family_id,omitempty"`
	UserID   *uint `gorm:"uniqueIndex" json:"user_id,omitempty"`

	// Relationships
	Ward   *Ward   `gorm:"foreignKey:WardID" json:"ward,omitempty"`
	Family *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
