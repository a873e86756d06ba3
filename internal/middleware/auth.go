package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/purchase_converter_app/internal/dto"
	"github.com/SscSPs/purchase_converter_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates RS256 bearer
// tokens against the published key set. The keyFunc resolves the verification
// key by the token header's kid, exactly as a remote resource server would.
func AuthMiddleware(keyFunc jwt.Keyfunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Authorization header format must be Bearer {token}"))
			return
		}

		tokenString := parts[1]

		claims := &utils.AccessTokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, jwt.WithValidMethods([]string{"RS256"}))
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", msg))
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Invalid token claims"))
			return
		}

		clientID := claims.Subject

		// Store client ID and scopes in the request context
		ctx := context.WithValue(c.Request.Context(), clientIDKey, clientID)
		ctx = context.WithValue(ctx, scopesKey, claims.Scopes())

		// Enrich the request logger with the client identity
		enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("client_id", clientID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireScope creates a Gin middleware that rejects authenticated requests
// whose token lacks the given scope. Must run after AuthMiddleware: a missing
// token is 401 territory, a valid token without the scope is 403.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		scopes, ok := GetScopesFromContext(c)
		if !ok {
			logger.Error("Scopes missing from context; AuthMiddleware not applied?")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Authentication required"))
			return
		}

		for _, s := range scopes {
			if s == scope {
				c.Next()
				return
			}
		}

		logger.Warn("Token missing required scope", slog.String("required_scope", scope))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Forbidden", "Token does not carry the required scope '"+scope+"'"))
	}
}
