package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware guards operator-only endpoints. Handlers downstream can
// assume the request carries a verified operator identity; nothing beyond
// this middleware ever touches credentials.
func JWTAuthMiddleware(tokenService *adminjwt.TokenService) gin.HandlerFunc {
	const bearerSchema = "Bearer "

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
			return
		}

		claims, err := tokenService.Validate(authHeader[len(bearerSchema):])
		if err != nil {
			log.Printf("[WARN] token validation failed: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set("adminID", claims["sub"])
		c.Set("adminEmail", claims["email"])
		c.Set("adminRole", claims["role"])
		c.Next()
	}
}
