package service

import (
	"context"
	"fmt"
	"time"

	"alumni-gateway/logger"
	"alumni-gateway/model"
	"alumni-gateway/repository"

	"github.com/sirupsen/logrus"
)

// BlacklistService maintains the token revocation store. Reads go through
// a positive Redis cache: only confirmed revocations are cached, never
// negatives, so a freshly blacklisted token is rejected on the next
// database lookup even if it was checked moments earlier.
type BlacklistService struct {
	repo        repository.IBlacklistTokenRepository
	tokens      *TokenService
	cache       ICacheClient
	fallbackTTL time.Duration
	cacheTTL    time.Duration
}

// NewBlacklistService creates a BlacklistService. The cache client may be
// nil, in which case every lookup goes straight to the repository.
func NewBlacklistService(repo repository.IBlacklistTokenRepository, tokens *TokenService, cache ICacheClient, fallbackTTL, cacheTTL time.Duration) *BlacklistService {
	return &BlacklistService{
		repo:        repo,
		tokens:      tokens,
		cache:       cache,
		fallbackTTL: fallbackTTL,
		cacheTTL:    cacheTTL,
	}
}

func cacheKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// BlacklistToken records a revocation for the given token. The row's
// expiry is lifted from the token's own expiry claim; if the token cannot
// be read, the configured access-token lifetime is used instead so the
// row still becomes purgeable.
func (s *BlacklistService) BlacklistToken(ctx context.Context, token, userID, userType string) error {
	expiry, err := s.tokens.ExtractExpiry(token)
	if err != nil {
		logger.Log.WithError(err).Warn("Could not parse token expiry, using default")
		expiry = time.Now().Add(s.fallbackTTL)
	}

	record := &model.BlacklistedToken{
		Token:      token,
		UserID:     userID,
		UserType:   userType,
		TokenType:  model.TokenTypeAccess,
		ExpiryDate: expiry,
	}

	if err := s.repo.Create(record); err != nil {
		return err
	}

	if s.cache != nil {
		if ttl := s.positiveTTL(expiry); ttl > 0 {
			s.cache.Set(ctx, cacheKey(token), "1", ttl)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"user_type": userType,
	}).Info("Token blacklisted")
	return nil
}

// IsTokenBlacklisted reports whether a revocation record exists for the
// exact token value, consulting the cache first and back-filling it on a
// database hit.
func (s *BlacklistService) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if s.cache != nil {
		if _, err := s.cache.Get(ctx, cacheKey(token)).Result(); err == nil {
			return true, nil
		}
	}

	revoked, err := s.repo.ExistsByToken(token)
	if err != nil {
		return false, err
	}

	if revoked && s.cache != nil {
		s.cache.Set(ctx, cacheKey(token), "1", s.cacheTTL)
	}
	return revoked, nil
}

// BlacklistAllUserTokens removes every revocation record for the given
// (userID, userType) pair. This mirrors the upstream identity service's
// bulk operation, which deletes existing records rather than
// mass-inserting deny entries; there is no registry of live tokens to
// enumerate. Cached positive entries for the removed tokens age out
// within the cache TTL.
func (s *BlacklistService) BlacklistAllUserTokens(ctx context.Context, userID, userType string) error {
	deleted, err := s.repo.DeleteAllUserTokens(userID, userType)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"user_type": userType,
		"deleted":   deleted,
	}).Info("All blacklist records removed for user")
	return nil
}

// CleanupExpiredTokens sweeps rows whose expiry date has passed. It is
// idempotent and safe to invoke from external cron, the cleanup endpoint,
// or the in-process scheduler.
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpiredTokens(time.Now())
	if err != nil {
		return 0, err
	}
	logger.Log.WithField("deleted", deleted).Info("Expired blacklist records cleaned up")
	return deleted, nil
}

// positiveTTL caps a cache entry's lifetime at the shorter of the token's
// remaining validity and the configured cache TTL.
func (s *BlacklistService) positiveTTL(expiry time.Time) time.Duration {
	ttl := time.Until(expiry)
	if ttl > s.cacheTTL {
		return s.cacheTTL
	}
	return ttl
}
