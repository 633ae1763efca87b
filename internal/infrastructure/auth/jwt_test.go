package auth

import (
	"testing"
	"time"

	"github.com/estateflow/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "estate-test",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	input := TokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "leasing-agent",
		Roles:    []string{"agent"},
	}

	token, expiresAt, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	tenantID, _ := claims.TenantUUID()
	userID, _ := claims.UserUUID()
	assert.Equal(t, input.TenantID, tenantID)
	assert.Equal(t, input.UserID, userID)
	assert.True(t, claims.HasRole("agent"))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestJWTService_Rejections(t *testing.T) {
	svc := newTestJWTService()
	input := TokenInput{TenantID: uuid.New(), UserID: uuid.New()}

	t.Run("expired", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(input)
		require.NoError(t, err)

		later := *svc
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err = later.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-entirely-32-chars", Issuer: "estate-test", AccessTokenExpiration: time.Minute})
		token, _, err := other.GenerateAccessToken(input)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else", AccessTokenExpiration: time.Minute})
		token, _, err := other.GenerateAccessToken(input)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			TenantID: uuid.NewString(), UserID: uuid.NewString(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(TokenInput{UserID: uuid.New()})
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("missing user", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(TokenInput{TenantID: uuid.New()})
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
