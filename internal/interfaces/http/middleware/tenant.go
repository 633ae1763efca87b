package middleware

import (
	"net/http"

	"github.com/estateflow/backend/internal/infrastructure/logger"
	"github.com/estateflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	UserIDKey       = "user_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// Tenant resolves the tenant and acting user from the JWT claims. The
// X-Tenant-ID header is accepted only when it names the same tenant as the
// token; it never selects a tenant on its own.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortTenant(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Tenant identification required")
			return
		}

		tenantID, err := claims.TenantUUID()
		if err != nil || tenantID == uuid.Nil {
			abortTenant(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid tenant ID in token")
			return
		}
		userID, err := claims.UserUUID()
		if err != nil || userID == uuid.Nil {
			abortTenant(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid user ID in token")
			return
		}

		if header := c.GetHeader(TenantHeaderKey); header != "" {
			headerID, err := uuid.Parse(header)
			if err != nil || headerID != tenantID {
				abortTenant(c, http.StatusForbidden, dto.ErrCodeForbidden, "X-Tenant-ID does not match the authenticated tenant")
				return
			}
		}

		c.Set(TenantIDKey, tenantID)
		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

func abortTenant(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetTenantID returns the tenant resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetUserID returns the acting user resolved by Tenant
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
