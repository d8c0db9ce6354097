package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/session"
)

// AuthRequired valide le token de session opaque porté par le header
// Authorization et place l'utilisateur dans le contexte Gin.
func AuthRequired(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}
		token := parts[1]

		user := sessions.ValidateSession(token)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session invalide ou expirée"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("session_token", token)
		c.Next()
	}
}
