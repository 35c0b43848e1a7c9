package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation("email and password are required"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// VerifyToken validates the bearer token and returns the live user record.
func (h HandlerSet) VerifyToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		h.respondError(c, apperr.Unauthorized("missing token"))
		return
	}

	user, err := h.auth.Verify(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// Logout holds no server state; the token stays valid until expiry and the
// client discards it.
func (h HandlerSet) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
