package models

import (
	"testing"
	"time"
)

func TestNextOccurrenceOneOffEvent(t *testing.T) {
	date := time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)
	event := Event{Name: "Parish Feast", Date: date}

	if got := event.NextOccurrence(); !got.Equal(date) {
		t.Errorf("NextOccurrence() = %v; want %v", got, date)
	}
}

func TestNextOccurrenceRecurringEvent(t *testing.T) {
	rule := "FREQ=WEEKLY;BYDAY=SU"
	// a Sunday well in the past, so the rule has to roll forward
	start := time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)
	event := Event{Name: "Sunday Mass", Date: start, RecurringRule: &rule}

	next := event.NextOccurrence()
	if next.Before(time.Now().Add(-24 * time.Hour)) {
		t.Errorf("NextOccurrence() = %v; want a date no older than yesterday", next)
	}
	if next.Weekday() != time.Sunday {
		t.Errorf("NextOccurrence() fell on %v; want Sunday", next.Weekday())
	}
}

func TestNextOccurrenceBadRuleFallsBack(t *testing.T) {
	rule := "not-an-rrule"
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	event := Event{Name: "Broken", Date: date, RecurringRule: &rule}

	if got := event.NextOccurrence(); !got.Equal(date) {
		t.Errorf("NextOccurrence() = %v; want fallback to event date %v", got, date)
	}
}
