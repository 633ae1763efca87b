package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/estateflow/backend/internal/infrastructure/auth"
	"github.com/estateflow/backend/internal/infrastructure/logger"
	"github.com/estateflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig configures JWTAuth
type JWTConfig struct {
	Service *auth.JWTService
	// SkipPaths are matched exactly
	SkipPaths []string
	// SkipPathPrefixes are matched by prefix
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig returns the config used by the API server
func DefaultJWTConfig(service *auth.JWTService) JWTConfig {
	return JWTConfig{
		Service:          service,
		SkipPaths:        []string{"/health", "/ready", "/metrics"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// JWTAuth validates the bearer token and stores its claims in the context
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, path) {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, log, dto.ErrCodeUnauthorized, "Authentication required", nil)
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" {
			abortUnauthorized(c, log, dto.ErrCodeTokenInvalid, "Invalid authorization header format", nil)
			return
		}

		claims, err := cfg.Service.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, log, dto.ErrCodeTokenExpired, "Token has expired", err)
				return
			}
			abortUnauthorized(c, log, dto.ErrCodeTokenInvalid, "Invalid token", err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		ctx := logger.WithActorID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, code, message string, err error) {
	log.Warn("JWT authentication failed",
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetJWTClaims returns the validated claims, or nil on unauthenticated routes
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// RequireRole allows the request only when the token carries role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"This operation requires the "+role+" role",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
