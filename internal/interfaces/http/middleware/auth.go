package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"pfp-registry.backend/pkg/jwt"
	"pfp-registry.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// WalletAddressKey is the context key for the authenticated wallet address
	WalletAddressKey = "walletAddress"
)

// AuthMiddleware validates the wallet session token and stores the
// authenticated wallet address in the request context. Only access tokens
// pass; refresh tokens are rejected so they stay confined to the refresh
// endpoint.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "Token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		if claims.TokenType != "access" {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(WalletAddressKey, strings.ToLower(claims.WalletAddress))
		c.Next()
	}
}

// GetWalletAddress returns the authenticated wallet address from the context
func GetWalletAddress(c *gin.Context) (string, bool) {
	address, exists := c.Get(WalletAddressKey)
	if !exists {
		return "", false
	}
	return address.(string), true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    "ERR_UNAUTHORIZED",
		"message": message,
	})
}
