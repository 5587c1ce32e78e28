package notification

import (
	"log"
	"net/http"
	"strconv"

	"fixify/internal/middleware"
	"fixify/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes expects an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.List)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.POST("/read-all", h.MarkAllAsRead)
	}
	if h.hub != nil {
		protected.GET("/ws", h.Connect)
	}
}

func (h *Handler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = min(v, 100)
		}
	}
	unreadOnly := c.Query("unread") == "true"

	list, unread, err := h.service.List(c.Request.Context(), user.ID, unreadOnly, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unreadCount":   unread,
	})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification id")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), user.ID, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	n, err := h.service.MarkAllAsRead(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": n})
}

// Connect upgrades to a websocket that streams the caller's notifications.
func (h *Handler) Connect(c *gin.Context) {
	user := middleware.CurrentUser(c)
	log.Printf("ws_connect user_id=%d", user.ID)
	if err := h.hub.Serve(c.Writer, c.Request, user.ID); err != nil {
		log.Printf("ws_upgrade_failed user_id=%d error=%q", user.ID, err.Error())
	}
}
