package models

import (
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// Event is a parish event or service announcement
type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name  string    `gorm:"type:varchar(255)" json:"name"`
	Date  time.Time `json:"date"`
	Venue string    `gorm:"type:varchar(255)" json:"venue"`
	Info  *string   `gorm:"type:text" json:"info,omitempty"`

	// RFC 5545 RRULE string for recurring services (weekly masses, novenas)
	RecurringRule *string `gorm:"type:text" json:"recurring_rule,omitempty"`
}

// NextOccurrence calculates the next date of the event. One-off events
// return their own date; recurring events evaluate the rule from the event
// date, including today.
func (e Event) NextOccurrence() time.Time {
	if e.RecurringRule == nil || *e.RecurringRule == "" {
		return e.Date
	}

	rule, err := rrule.StrToRRule(*e.RecurringRule)
	if err != nil {
		return e.Date
	}
	rule.DTStart(e.Date)

	next := rule.After(time.Now().Add(-24*time.Hour), true)
	if !next.IsZero() {
		return next
	}
	return e.Date
}
