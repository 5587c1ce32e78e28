package middleware

import (
	"net/http"

	"fixify/internal/domain"
	"fixify/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Require lets the request through only when allow accepts the current
// user. It must run after Authenticate.
func Require(allow func(*domain.User) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized")
			return
		}
		if !allow(user) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", message)
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return Require((*domain.User).IsAdmin, "Access denied, admin only")
}

func ApprovedProviderOnly() gin.HandlerFunc {
	return Require((*domain.User).IsApprovedProvider, "Access denied, only approved providers can proceed")
}

func ClientOnly() gin.HandlerFunc {
	return Require((*domain.User).IsClient, "Access denied, clients only")
}
