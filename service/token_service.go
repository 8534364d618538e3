package service

import (
	"errors"
	"fmt"
	"time"

	"alumni-gateway/logger"
	"alumni-gateway/model"

	"github.com/golang-jwt/jwt/v5"
)

// Validation outcomes. Every failure mode maps to exactly one of these so
// the authentication filter can translate them into distinct responses
// instead of collapsing everything into a generic failure.
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// TokenService validates and mints HS256 tokens against the shared
// signing secret.
type TokenService struct {
	secretKey      []byte
	accessTokenTTL time.Duration
}

func NewTokenService(secretKey string, accessTokenTTL time.Duration) *TokenService {
	return &TokenService{
		secretKey:      []byte(secretKey),
		accessTokenTTL: accessTokenTTL,
	}
}

// Validate checks the token's signature and expiry and returns its claims.
// On failure it returns one of ErrTokenExpired, ErrTokenMalformed or
// ErrTokenInvalid.
func (s *TokenService) Validate(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// BuildUserContext derives the forwarded identity from validated claims.
// Admin tokens carry their email as the username surrogate; everything
// else uses the username claim verbatim and is stamped as a USER.
func (s *TokenService) BuildUserContext(claims *model.AppClaims) model.CurrentUserContext {
	if claims.UserType == model.UserTypeAdmin {
		return model.CurrentUserContext{
			Username: claims.Email,
			UserID:   claims.UserID,
			UserType: model.UserTypeAdmin,
			Role:     claims.Role,
		}
	}
	return model.CurrentUserContext{
		Username: claims.Username,
		UserID:   claims.UserID,
		UserType: model.UserTypeUser,
		Role:     claims.Role,
	}
}

// ExtractExpiry returns the expiry claim of a verified token. Callers are
// expected to fall back to a configured default when the token cannot be
// read.
func (s *TokenService) ExtractExpiry(tokenString string) (time.Time, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrTokenInvalid
	}
	return claims.ExpiresAt.Time, nil
}

// GenerateAccessToken mints a user access token with the standard claim
// layout used by the identity service.
func (s *TokenService) GenerateAccessToken(username, userID string) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		Username:  username,
		UserID:    userID,
		Role:      "USER",
		UserType:  model.UserTypeAlumni,
		TokenType: model.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// GenerateAdminToken mints an admin token. Admin sessions are fixed at
// one hour regardless of the access token TTL.
func (s *TokenService) GenerateAdminToken(email, role string, adminID int64) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		Email:    email,
		Role:     role,
		UserType: model.UserTypeAdmin,
		AdminID:  adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to sign admin token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}
