package handlers

import (
	"net/http"

	"tourbook/middleware"
	"tourbook/models"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	UserService user.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.Register(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.Login(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// currentUser pulls the authenticated account's ID and role out of the
// context set by the auth middleware.
func currentUser(c *gin.Context) (string, string, bool) {
	userID := c.GetString(middleware.CtxUserID)
	role := c.GetString(middleware.CtxRole)
	if userID == "" || role == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized"})
		return "", "", false
	}
	return userID, role, true
}
