package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer tokens issued by
// the hosted auth provider. The token subject becomes the user ID. When audience is not
// empty the token must carry it.
func AuthMiddleware(jwtSecret, audience string) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(audience))
	}
	parser := jwt.NewParser(parserOpts...)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := parser.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				msg = "Token not valid yet"
			case errors.Is(err, jwt.ErrTokenInvalidAudience):
				msg = "Token audience mismatch"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		userID := claims.Subject

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := WithLogger(WithUserID(c.Request.Context(), userID), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}
