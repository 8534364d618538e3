package repository

import (
	"database/sql"
	"time"

	"alumni-gateway/logger"
	"alumni-gateway/model"

	"github.com/sirupsen/logrus"
)

// IBlacklistTokenRepository defines the contract for revocation-record
// database operations.
type IBlacklistTokenRepository interface {
	Create(token *model.BlacklistedToken) error
	ExistsByToken(token string) (bool, error)
	DeleteAllUserTokens(userID, userType string) (int64, error)
	DeleteExpiredTokens(now time.Time) (int64, error)
}

// BlacklistTokenRepository implements IBlacklistTokenRepository over the
// blacklisted_tokens table. Uniqueness of the token column is enforced by
// the database, not here.
type BlacklistTokenRepository struct {
	DB *sql.DB
}

// NewBlacklistTokenRepository creates a new BlacklistTokenRepository.
func NewBlacklistTokenRepository(db *sql.DB) *BlacklistTokenRepository {
	return &BlacklistTokenRepository{DB: db}
}

// Create inserts a new revocation record. Inserting a token value that is
// already present fails with the database's uniqueness violation.
func (r *BlacklistTokenRepository) Create(token *model.BlacklistedToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":     token.UserID,
		"user_type":   token.UserType,
		"expiry_date": token.ExpiryDate,
	})
	log.Info("Executing query to blacklist a token")

	query := `INSERT INTO blacklisted_tokens (token, user_id, user_type, token_type, expiry_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token.Token, token.UserID, token.UserType, token.TokenType, token.ExpiryDate).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute blacklist insert query")
		return err
	}
	return nil
}

// ExistsByToken reports whether a revocation record exists for the exact
// token value.
func (r *BlacklistTokenRepository) ExistsByToken(token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token = $1)`
	err := r.DB.QueryRow(query, token).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute blacklist existence query")
		return false, err
	}
	return exists, nil
}

// DeleteAllUserTokens removes every revocation record for a
// (userID, userType) pair and returns the number of rows removed.
func (r *BlacklistTokenRepository) DeleteAllUserTokens(userID, userType string) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"user_type": userType,
	})
	log.Info("Executing query to delete all blacklist records for a user")

	query := `DELETE FROM blacklisted_tokens WHERE user_id = $1 AND user_type = $2`
	result, err := r.DB.Exec(query, userID, userType)
	if err != nil {
		log.WithError(err).Error("Failed to execute bulk delete query")
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteExpiredTokens removes records whose expiry date has passed. Rows
// past their expiry are safe to purge because the token would be rejected
// by signature validation anyway.
func (r *BlacklistTokenRepository) DeleteExpiredTokens(now time.Time) (int64, error) {
	query := `DELETE FROM blacklisted_tokens WHERE expiry_date < $1`
	result, err := r.DB.Exec(query, now)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute expired-token sweep query")
		return 0, err
	}
	return result.RowsAffected()
}
