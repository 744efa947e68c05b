package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	"github.com/meditrack/hms-api/pkg/auth"
)

const ContextAuth = "auth_context"

type AuthMiddleware struct {
	jwt    auth.JWTService
	tokens repository.TokenRepository
}

// NewAuthMiddleware builds the session middleware. tokens may be nil; the
// revocation check is skipped without a token store.
func NewAuthMiddleware(jwt auth.JWTService, tokens repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, tokens: tokens}
}

// Authenticate verifies the bearer token and stores the request-scoped
// AuthContext in the gin context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwt.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		if m.tokens != nil {
			revoked, err := m.tokens.IsRevoked(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				abortUnauthorized(c, "token has been revoked")
				return
			}
		}

		authCtx, err := claims.AuthContext()
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextAuth, authCtx)
		c.Next()
	}
}

// RequireRole rejects requests whose session role does not match.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx := GetAuthContext(c)
		if authCtx == nil {
			abortUnauthorized(c, "not authenticated")
			return
		}
		if !authCtx.Is(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "insufficient role",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}

// GetAuthContext returns the identity set by Authenticate, or nil.
func GetAuthContext(c *gin.Context) *model.AuthContext {
	v, ok := c.Get(ContextAuth)
	if !ok {
		return nil
	}
	authCtx, ok := v.(*model.AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: msg,
		TraceID: c.GetString(ContextRequestID),
	})
}
