package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Marga-Ghale/skill-swap/internal/models"
	"github.com/gin-gonic/gin"
)

// TokenAuthenticator validates an access token and returns its subject.
// service.AuthService satisfies it.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			slog.Debug("auth_header_missing", slog.String("component", "auth"), slog.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || tokenString == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		userID, err := auth.Authenticate(tokenString)
		if err != nil {
			slog.Info("auth_token_rejected",
				slog.String("component", "auth"),
				slog.String("path", c.Request.URL.Path),
				slog.Any("error", err))
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// Set user ID in context for handlers
		c.Set("userID", userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized", Message: message})
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// RequireUserID writes a 401 and returns false if user ID is not in context
func RequireUserID(c *gin.Context) (string, bool) {
	userID := GetUserID(c)
	if userID == "" {
		abortUnauthorized(c, "User not authenticated")
		return "", false
	}
	return userID, true
}
