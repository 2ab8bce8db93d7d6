package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents the access level of a user
type Role string

const (
	RoleUser       Role = "USER"
	RoleParishoner Role = "PARISHONER"
	RoleAdmin      Role = "ADMIN"
	RoleDeveloper  Role = "DEVELOPER"
)

// IsAdmin reports whether the role may access the admin surface
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// User represents a login identity in the system
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FirebaseUID string `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	Name        string `gorm:"type:varchar(255)" json:"name"`
	Email       string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Image       string `gorm:"type:text" json:"image,omitempty"`
	Role        Role   `gorm:"type:varchar(20);default:'USER'" json:"role"`

	// Relationships
	Parishoner *Parishoner `gorm:"foreignKey:UserID" json:"parishoner,omitempty"`
}
