package response

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"fixify/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Message replies with a bare message and optional payload fields.
func Message(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

type kind struct {
	target error
	status int
	code   string
}

var kinds = []kind{
	{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidState, http.StatusBadRequest, "INVALID_STATE"},
}

// Status maps an error to its HTTP status and error code.
func Status(err error) (int, string) {
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// FromError is the single boundary between service errors and HTTP replies.
// Persistence and other unexpected failures are logged and hidden behind a
// generic message.
func FromError(c *gin.Context, err error) {
	status, code := Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.Printf("internal_error method=%s path=%s error=%q", c.Request.Method, c.Request.URL.Path, err.Error())
		Error(c, status, code, "Internal server error")
		return
	}
	Error(c, status, code, publicMessage(err))
}

// publicMessage drops the kind prefix ("validation error: ...") from wrapped
// errors so clients see only the specific reason.
func publicMessage(err error) string {
	msg := err.Error()
	for _, k := range kinds {
		prefix := k.target.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			msg = strings.TrimPrefix(msg, prefix)
			break
		}
	}
	if msg == "" {
		return "Request failed"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
