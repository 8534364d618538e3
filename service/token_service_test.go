package service

import (
	"testing"
	"time"

	"alumni-gateway/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, 15*time.Minute)
}

func TestTokenService_GenerateAndValidateAccessToken(t *testing.T) {
	tokens := newTestTokenService()

	tokenString, err := tokens.GenerateAccessToken("john.doe", "u-100")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := tokens.Validate(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "john.doe", claims.Username)
	assert.Equal(t, "u-100", claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, model.UserTypeAlumni, claims.UserType)
	assert.Equal(t, model.TokenTypeAccess, claims.TokenType)
}

func TestTokenService_GenerateAndValidateAdminToken(t *testing.T) {
	tokens := newTestTokenService()

	tokenString, err := tokens.GenerateAdminToken("admin@example.com", "SUPER_ADMIN", 7)
	assert.NoError(t, err)

	claims, err := tokens.Validate(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "SUPER_ADMIN", claims.Role)
	assert.Equal(t, model.UserTypeAdmin, claims.UserType)
	assert.Equal(t, int64(7), claims.AdminID)
}

func TestTokenService_Validate_Failures(t *testing.T) {
	tokens := newTestTokenService()

	t.Run("expired token", func(t *testing.T) {
		expired := signedTokenWithExpiry(t, testSecret, time.Now().Add(-time.Minute))
		_, err := tokens.Validate(expired)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := tokens.Validate("not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		foreign := signedTokenWithExpiry(t, "a-different-secret", time.Now().Add(time.Minute))
		_, err := tokens.Validate(foreign)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestTokenService_BuildUserContext(t *testing.T) {
	tokens := newTestTokenService()

	t.Run("admin uses email as username", func(t *testing.T) {
		claims := &model.AppClaims{
			Email:    "admin@example.com",
			UserType: model.UserTypeAdmin,
			Role:     "SUPER_ADMIN",
		}
		ctx := tokens.BuildUserContext(claims)
		assert.Equal(t, "admin@example.com", ctx.Username)
		assert.Equal(t, model.UserTypeAdmin, ctx.UserType)
		assert.Equal(t, "SUPER_ADMIN", ctx.Role)
	})

	t.Run("non-admin uses username claim verbatim", func(t *testing.T) {
		claims := &model.AppClaims{
			Username: "jane.doe",
			UserID:   "u-200",
			UserType: model.UserTypeAlumni,
			Role:     "USER",
		}
		ctx := tokens.BuildUserContext(claims)
		assert.Equal(t, "jane.doe", ctx.Username)
		assert.Equal(t, "u-200", ctx.UserID)
		assert.Equal(t, model.UserTypeUser, ctx.UserType)
	})

	t.Run("missing userType is treated as non-admin", func(t *testing.T) {
		claims := &model.AppClaims{Username: "ghost", Role: "USER"}
		ctx := tokens.BuildUserContext(claims)
		assert.Equal(t, "ghost", ctx.Username)
		assert.Equal(t, model.UserTypeUser, ctx.UserType)
	})
}

func TestTokenService_ExtractExpiry(t *testing.T) {
	tokens := newTestTokenService()

	expiry := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	tokenString := signedTokenWithExpiry(t, testSecret, expiry)

	got, err := tokens.ExtractExpiry(tokenString)
	assert.NoError(t, err)
	assert.WithinDuration(t, expiry, got, time.Second)

	_, err = tokens.ExtractExpiry("garbage")
	assert.Error(t, err)
}

func signedTokenWithExpiry(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()
	claims := &model.AppClaims{
		Username: "test-user",
		UserID:   "u-1",
		Role:     "USER",
		UserType: model.UserTypeAlumni,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "test-user",
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}
