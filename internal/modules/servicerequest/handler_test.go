package servicerequest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"fixify/internal/domain"
	"fixify/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc *Service, caller *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		middleware.SetCurrentUser(c, caller)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestHandler_CompleteWithEmptyBody(t *testing.T) {
	for name, length := range map[string]int64{"sized": 0, "chunked": -1} {
		t.Run(name, func(t *testing.T) {
			f := setup(t)
			r := f.create(t)
			_, err := f.svc.Accept(context.Background(), f.provider, r.ID)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/request/"+strconv.FormatInt(r.ID, 10)+"/complete", strings.NewReader(""))
			req.Header.Set("Content-Type", "application/json")
			req.ContentLength = length
			w := httptest.NewRecorder()
			setupRouter(f.svc, f.provider).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var body struct {
				Data domain.ServiceRequest `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, domain.RequestCompleted, body.Data.Status)
			assert.Zero(t, body.Data.TotalAmount)
		})
	}
}

func TestHandler_CompleteRejectsMalformedBody(t *testing.T) {
	f := setup(t)
	r := f.create(t)
	_, err := f.svc.Accept(context.Background(), f.provider, r.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/request/"+strconv.FormatInt(r.ID, 10)+"/complete", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(f.svc, f.provider).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
