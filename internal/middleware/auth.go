package middleware

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

// RequireAuth returns a middleware that verifies the Firebase session
// cookie and loads the local user row. Downstream handlers read userID,
// userUID, userEmail and userRole from the echo context.
func RequireAuth(authClient *auth.Client, db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authClient == nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Authentication not configured")
			}

			if err := resolveSession(c, authClient, db); err != nil {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to continue")
			}

			return next(c)
		}
	}
}

// OptionalAuth resolves the session when a cookie is present but lets
// anonymous requests through. Used on public endpoints that personalize
// their response for logged-in users.
func OptionalAuth(authClient *auth.Client, db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authClient != nil {
				_ = resolveSession(c, authClient, db)
			}
			return next(c)
		}
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("userRole").(models.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to continue")
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You don't have permission to access this resource")
		}
	}
}

// resolveSession verifies the session cookie and stashes the user's
// identity in the request context
func resolveSession(c echo.Context, authClient *auth.Client, db *gorm.DB) error {
	cookie, err := c.Cookie("session")
	if err != nil || cookie.Value == "" {
		return echo.ErrUnauthorized
	}

	decodedToken, err := authClient.VerifySessionCookie(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	var user models.User
	if err := db.Where("firebase_uid = ?", decodedToken.UID).First(&user).Error; err != nil {
		return err
	}

	c.Set("userID", user.ID)
	c.Set("userUID", decodedToken.UID)
	c.Set("userEmail", user.Email)
	c.Set("userRole", user.Role)
	return nil
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     "session",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
}
