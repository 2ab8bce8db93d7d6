package models

import (
	"time"

	"gorm.io/gorm"
)

// Donation records a completed gift. A row exists only for orders that
// reached SUCCESS through signature verification; fields are copied from the
// source order at promotion time. ReceiptIssued flips to true exactly once,
// when a receipt has been mailed to the donor.
type Donation struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	OrderID   uint   `gorm:"uniqueIndex" json:"order_id"`
	PaymentID string `gorm:"type:varchar(100)" json:"payment_id"`

	Type       DonationType `gorm:"type:varchar(20)" json:"type"`
	Amount     int64        `json:"amount"`
	ForWhom    string       `gorm:"type:varchar(255)" json:"for_whom"`
	ByWhom     string       `gorm:"type:varchar(255)" json:"by_whom"`
	Email      string       `gorm:"type:varchar(255)" json:"email"`
	Purpose    *string      `gorm:"type:text" json:"purpose,omitempty"`
	MassTiming *string      `gorm:"type:varchar(100)" json:"mass_timing,omitempty"`

	ReceiptIssued bool `gorm:"default:false" json:"receipt_issued"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}
