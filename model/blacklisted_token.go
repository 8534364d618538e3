package model

import "time"

// Token type classifications stored alongside a blacklist entry. The store
// records the classification but does not act on it.
const (
	TokenTypeAccess  = "ACCESS"
	TokenTypeRefresh = "REFRESH"
)

// BlacklistedToken is a revocation record. The presence of a row means the
// raw token value must be rejected even though its signature is still valid.
// The token itself is treated as an opaque key and never parsed here.
type BlacklistedToken struct {
	ID         int64     `json:"id"`
	Token      string    `json:"-"` // Raw token values are not exposed in JSON responses.
	UserID     string    `json:"user_id"`
	UserType   string    `json:"user_type"`
	TokenType  string    `json:"token_type"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}
