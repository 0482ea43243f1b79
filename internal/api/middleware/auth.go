package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/pkg/errors"
)

// AdminAuthMiddleware checks the bearer key against the configured bcrypt hash
func AdminAuthMiddleware(cfg config.AdminConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, &errors.ErrUnauthorized{Message: "missing authorization header"})
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, &errors.ErrUnauthorized{Message: "invalid authorization header format"})
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.APIKeyHash), []byte(apiKey)); err != nil {
			logger.Warn("Rejected admin request",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			abortUnauthorized(c, &errors.ErrUnauthorized{Message: "invalid API key"})
			return
		}

		c.Next()
	}
}

// abortUnauthorized stops the chain and keeps err on the context for request logging
func abortUnauthorized(c *gin.Context, err *errors.ErrUnauthorized) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Message})
}
