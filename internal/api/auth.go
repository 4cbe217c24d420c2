package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grupi2/calorie-tracker/backend/internal/service"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

type AuthHandler struct {
	authService  service.IAuthService
	emailService service.IEmailService
}

func NewAuthHandler(authService service.IAuthService, emailService service.IEmailService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)
		users.POST("/send-confirmation", h.SendConfirmation)
		users.POST("/update-password", h.UpdatePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user})
}

// Logout exists for the frontend's benefit; tokens are stateless so there is
// nothing to invalidate server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) SendConfirmation(c *gin.Context) {
	var req types.SendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.emailService.SendEmail(req.Email, req.Subject, req.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to send confirmation code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent successfully"})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req types.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}
	if req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "new password is required"})
		return
	}

	if err := h.authService.UpdatePassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}
