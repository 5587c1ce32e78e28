package auth

import (
	"net/http"
	"time"

	"fixify/internal/middleware"
	"fixify/internal/pkg/response"
	"fixify/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie set on login.
type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("/register/client", h.RegisterClient)
		users.POST("/register/provider", h.RegisterProvider)
		users.POST("/register/admin", h.RegisterAdmin)
		users.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.POST("/logout", h.Logout)
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
	}
}

// bind decodes the JSON body into req and runs struct validation. It writes
// the error reply itself and reports whether the handler may continue.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required", errs)
		return false
	}
	return true
}

func (h *Handler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.RegisterClient(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Client registered successfully", gin.H{"user": toPublic(u)})
}

func (h *Handler) RegisterProvider(c *gin.Context) {
	var req RegisterProviderRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.RegisterProvider(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Provider registered successfully, awaiting admin approval", gin.H{
		"user":            toPublic(u),
		"servicesOffered": u.ServicesOffered,
	})
}

func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.RegisterAdmin(c.Request.Context(), req, c.GetHeader("X-Admin-Key"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Admin registered successfully", gin.H{"user": toPublic(u)})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setCookie(c, res.Token, int(h.cookie.TTL.Seconds()))
	response.Message(c, http.StatusOK, "Login successful", gin.H{
		"user":  toPublic(res.User),
		"token": res.Token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Message(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.CurrentUser(c))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Profile updated successfully", u)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     h.cookie.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}
