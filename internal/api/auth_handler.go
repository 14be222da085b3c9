package api

import (
	"net/http"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
}

// AuthHandler serves the token-based authentication endpoints.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Mount registers the auth routes on a group (mounted both versioned
// and unversioned).
func (h *AuthHandler) Mount(group *gin.RouterGroup) {
	group.POST("/login", h.login)
	group.POST("/register", h.register)
	group.GET("/validate", h.validate)
	group.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "login and password are required"}))
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	// the cookie serves browser clients that hit the API directly
	c.SetCookie(SessionCookie, result.Session.ID, 0, "/", "", false, true)
	respondOK(c, gin.H{
		"token":    result.Token,
		"username": result.Username,
		"role":     result.Role,
	})
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "name, email and password are required"}))
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
	}
	if err := h.svc.Register(c.Request.Context(), user); err != nil {
		handleError(c, err)
		return
	}
	respondCreated(c, user)
}

func (h *AuthHandler) validate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		unauthorized(c, "missing bearer token")
		return
	}
	claims, err := h.svc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		handleError(c, err)
		return
	}
	respondOK(c, gin.H{
		"username":  claims.Username,
		"role":      claims.Role,
		"authority": claims.Authority(),
	})
}

// logout destroys the session when a cookie is present; the JWT itself
// is stateless and simply expires.
func (h *AuthHandler) logout(c *gin.Context) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		if err := h.svc.Logout(c.Request.Context(), cookie); err != nil {
			handleError(c, apperr.Internal(err))
			return
		}
		c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: gin.H{"message": "logged out"}})
}
