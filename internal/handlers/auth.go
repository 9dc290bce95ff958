package handlers

import (
	"net/http"

	"github.com/ngocthb/OJT-BE/internal/middleware"
	"github.com/ngocthb/OJT-BE/internal/stores"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users  *stores.UserStore
	secret []byte
}

func NewAuthHandler(users *stores.UserStore, secret []byte) *AuthHandler {
	return &AuthHandler{users: users, secret: secret}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the password hash and issues a bearer token. Account
// registration happens elsewhere; this service only reads users.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "email and password are required")
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "ERR", "message": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "ERR", "message": "invalid email or password"})
		return
	}

	token, err := middleware.IssueToken(h.secret, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "ERR", "message": "failed to issue token"})
		return
	}

	OK(c, "Successfully logged in", gin.H{
		"access_token": token,
		"user":         user,
	})
}
