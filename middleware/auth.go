package middleware

import (
	"strings"

	"github.com/WarikanHQ/warikan-backend/config"
	apperrors "github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token on every request and stores the
// caller's subject in the context. Tokens are HS256, signed with the
// configured secret.
func AuthMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		tokenString, err := extractBearerToken(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, parseErr := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JwtSecretKey), nil
		})
		if parseErr != nil || !token.Valid {
			log.Debugw("Token validation failed", "error", parseErr, "path", c.Request.URL.Path)
			if parseErr != nil && strings.Contains(parseErr.Error(), jwt.ErrTokenExpired.Error()) {
				_ = c.Error(apperrors.AuthenticationFailed("Your session has expired"))
			} else {
				_ = c.Error(apperrors.AuthenticationFailed("Invalid authentication token"))
			}
			c.Abort()
			return
		}

		subject, subErr := claims.GetSubject()
		if subErr != nil || subject == "" {
			_ = c.Error(apperrors.AuthenticationFailed("Token has no subject"))
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), subject)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, *apperrors.AppError) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperrors.AuthenticationFailed("Authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.AuthenticationFailed("Authorization header must be a Bearer token")
	}

	return parts[1], nil
}
