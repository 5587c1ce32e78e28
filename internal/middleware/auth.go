package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fixify/internal/domain"
	"fixify/internal/pkg/jwt"
	"fixify/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// UserLoader fetches the account a session token points at.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticate resolves the caller from the session cookie, falling back to
// an Authorization bearer header, and loads the current user record.
func Authenticate(tokens *jwt.Service, users UserLoader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c, cookieName)
		if raw == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Not authorized, no token")
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Not authorized, invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "USER_NOT_FOUND", "Not authorized, user no longer exists")
				return
			}
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentUser returns the user resolved by Authenticate, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// SetCurrentUser is used by tests that bypass token handling.
func SetCurrentUser(c *gin.Context, u *domain.User) {
	c.Set(currentUserKey, u)
	c.Set("user_id", u.ID)
	c.Set("role", string(u.Role))
}
