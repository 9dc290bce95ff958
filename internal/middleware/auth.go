package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ngocthb/OJT-BE/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const CheckUserKey = "user"

// UserLoader resolves the authenticated user id from the token to a full
// user record.
type UserLoader interface {
	FindByID(id string) (*models.User, error)
}

// IssueToken signs a bearer token for the user, valid for 72 hours.
func IssueToken(secret []byte, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

// LoadUser parses the Authorization header and, when the token is valid,
// loads the user onto the context. Invalid or absent tokens leave the
// context untouched; AuthRequired decides whether that matters.
func LoadUser(users UserLoader, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if sub, _ := claims["sub"].(string); sub != "" {
						if user, err := users.FindByID(sub); err == nil {
							c.Set(CheckUserKey, user)
						}
					}
				}
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests that carry no authenticated user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "ERR",
				"message": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser. Only call behind
// AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CheckUserKey).(*models.User)
}
