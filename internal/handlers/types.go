package handlers

import (
	"github.com/labstack/echo/v4"
)

// Helper to safely get uint from context
func getUintFromContext(c echo.Context, key string) uint {
	val := c.Get(key)
	if val == nil {
		return 0
	}
	uintVal, ok := val.(uint)
	if !ok {
		return 0
	}
	return uintVal
}

// currentUserID returns the session user's id, or nil for anonymous
// requests
func currentUserID(c echo.Context) *uint {
	val := c.Get("userID")
	if val == nil {
		return nil
	}
	id, ok := val.(uint)
	if !ok {
		return nil
	}
	return &id
}
