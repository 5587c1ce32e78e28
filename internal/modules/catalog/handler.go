package catalog

import (
	"net/http"

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

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/service", h.List)
	api.GET("/service/:name", h.Get)
}

// RegisterAdminRoutes expects a group already restricted to admins.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/service", h.Create)
	admin.PUT("/service/:name", h.Update)
	admin.DELETE("/service/:name", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service name is required", errs)
		return
	}

	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Service added successfully", svc)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.Update(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Service updated successfully", svc)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Service deleted successfully", nil)
}
