package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDList is a list of user ids stored as a jsonb array. Used for the
// liked-by set on gallery images.
type IDList []uint

// Value implements driver.Valuer
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDList", value)
	}
	if len(data) == 0 {
		*l = IDList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether id is a member of the list
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle returns the list with id added if absent, or removed if present
func (l IDList) Toggle(id uint) IDList {
	if !l.Contains(id) {
		return append(append(IDList{}, l...), id)
	}
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
