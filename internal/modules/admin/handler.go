package admin

import (
	"net/http"

	"fixify/internal/middleware"
	"fixify/internal/pkg/response"
	"fixify/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by middleware.AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/providers", h.GetProviders)
	admin.PUT("/verify-provider", h.VerifyProvider)

	admin.GET("/bookings", h.GetBookings)
	admin.GET("/pending-bookings", h.GetPendingBookings)

	admin.GET("/earning", h.GetEarnings)
	admin.GET("/stats", h.GetStats)
}

func (h *Handler) GetProviders(c *gin.Context) {
	var f ProviderFilter
	_ = c.ShouldBindQuery(&f)

	providers, err := h.service.Providers(c.Request.Context(), f.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, providers)
}

func (h *Handler) VerifyProvider(c *gin.Context) {
	var req VerifyProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status. Use 'Approved' or 'Rejected'", errs)
		return
	}

	admin := middleware.CurrentUser(c)
	provider, err := h.service.VerifyProvider(c.Request.Context(), admin.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Provider "+string(provider.VerificationStatus)+" successfully", provider)
}

func (h *Handler) GetBookings(c *gin.Context) {
	list, err := h.service.Bookings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetPendingBookings(c *gin.Context) {
	list, err := h.service.PendingBookings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetEarnings(c *gin.Context) {
	report, err := h.service.Earnings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
