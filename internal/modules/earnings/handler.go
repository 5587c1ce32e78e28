package earnings

import (
	"net/http"

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

func (h *Handler) RegisterProviderRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/provider", middleware.ApprovedProviderOnly())
	{
		g.GET("/earnings", h.Summary)
		g.POST("/withdraw", h.Withdraw)
		g.GET("/withdrawals", h.Withdrawals)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		response.FromError(c, ErrInvalidAmount)
		return
	}

	res, err := h.service.Withdraw(c.Request.Context(), middleware.CurrentUser(c), *req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, res.Message, res)
}

func (h *Handler) Withdrawals(c *gin.Context) {
	list, err := h.service.Withdrawals(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
