package servicerequest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"fixify/internal/middleware"
	"fixify/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects an authenticated group; role checks are per route.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	provider := middleware.ApprovedProviderOnly()

	g := protected.Group("/request")
	{
		g.POST("", middleware.ClientOnly(), h.Create)
		g.GET("/myRequest", h.MyRequests)

		g.GET("/pending", provider, h.Pending)
		g.GET("/accepted", provider, h.Accepted)
		g.PUT("/:id/accept", provider, h.Accept)
		g.PUT("/:id/complete", provider, h.Complete)

		g.GET("/:id", h.Get)
		g.GET("/:id/bill", h.Bill)
		g.PUT("/:id/pay", h.Pay)
		g.PUT("/:id/rate", h.Rate)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, ErrMissingFields)
		return
	}

	r, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Service request created successfully", r)
}

func (h *Handler) MyRequests(c *gin.Context) {
	list, err := h.service.MyRequests(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Pending(c *gin.Context) {
	list, err := h.service.Pending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Accepted(c *gin.Context) {
	list, err := h.service.Accepted(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Accept(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := h.service.Accept(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Request accepted successfully", r)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// An empty body, sized or chunked, means no charges.
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Complete(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Service marked as completed", r)
}

func (h *Handler) Bill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bill, err := h.service.Bill(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bill)
}

func (h *Handler) Pay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.service.Pay(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Payment successful", res)
}

func (h *Handler) Rate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		response.FromError(c, ErrInvalidRating)
		return
	}

	r, err := h.service.Rate(c.Request.Context(), middleware.CurrentUser(c), id, *req.Rating)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Rating submitted successfully", r)
}
