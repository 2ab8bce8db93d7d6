package models

import (
	"time"

	"gorm.io/gorm"
)

// DonationType is the designated purpose of a gift
type DonationType string

const (
	DonationTypeChurch       DonationType = "CHURCH"
	DonationTypeChapel       DonationType = "CHAPEL"
	DonationTypeThanksgiving DonationType = "THANKSGIVING"
)

// OrderStatus tracks the payment lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusSuccess OrderStatus = "SUCCESS"
)

// Order is an intent to donate, created before the donor is sent to the
// payment gateway. An order only ever moves PENDING -> SUCCESS; orders that
// are never paid stay PENDING and are never deleted.
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	RazorpayOrderID string       `gorm:"type:varchar(100);uniqueIndex" json:"razorpay_order_id"`
	Type            DonationType `gorm:"type:varchar(20)" json:"type"`
	Amount          int64        `json:"amount"` // rupees
	ForWhom         string       `gorm:"type:varchar(255)" json:"for_whom"`
	ByWhom          string       `gorm:"type:varchar(255)" json:"by_whom"`
	Email           string       `gorm:"type:varchar(255)" json:"email"`
	Purpose         *string      `gorm:"type:text" json:"purpose,omitempty"`
	MassTiming      *string      `gorm:"type:varchar(100)" json:"mass_timing,omitempty"`
	Status          OrderStatus  `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PaymentID       *string      `gorm:"type:varchar(100)" json:"payment_id,omitempty"`
}
