package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/shared/utils/response"
	"seatbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by JWTAuth
const (
	ContextUserID  = "user_id"
	ContextEmail   = "user_email"
	ContextIsAdmin = "user_is_admin"
)

// JWTAuth resolves the bearer token to {userId, isAdmin} before any handler
// runs. Requests without a valid access token are rejected with 401.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		identity, err := auth.ParseAccessToken(secret, parts[1])
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			message := "invalid or expired token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "token expired"
			}
			response.RespondJSON(c, "error", http.StatusUnauthorized, message, nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextEmail, identity.Email)
		c.Set(ContextIsAdmin, identity.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects non-admin callers with 403. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user not found in context", nil, nil)
			c.Abort()
			return
		}

		if !IsAdmin(c) {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsAdmin reports whether the authenticated caller holds the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}

// RequestLogger logs every request once it has been handled
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}
