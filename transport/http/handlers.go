package http

import (
	"net/http"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/service"
	"github.com/gin-gonic/gin"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	auth *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(auth *service.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

// SignUpRequest represents a signup request
type SignUpRequest struct {
	Username  string `json:"username" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email,max=40"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,max=25"`
	LastName  string `json:"last_name" binding:"required,max=25"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp handles account creation
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := &core.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := h.auth.SignUp(c.Request.Context(), user, req.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles the login request. Unknown email and wrong password produce
// the same response body, so the endpoint cannot be used to enumerate
// registered emails.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	accessToken, refreshToken, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"email":    user.Email,
			"user_uid": user.UID,
		},
	})
}

// Refresh mints a new access token from a verified refresh token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	claims, ok := tokenClaims(c)
	if !ok {
		abortWithError(c, core.ErrMissingToken)
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), claims)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout revokes the presented access token
func (h *AuthHandlers) Logout(c *gin.Context) {
	claims, ok := tokenClaims(c)
	if !ok {
		abortWithError(c, core.ErrMissingToken)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the full profile of the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	claims, ok := tokenClaims(c)
	if !ok {
		abortWithError(c, core.ErrMissingToken)
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
