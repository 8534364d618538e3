package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"alumni-gateway/common"
	"alumni-gateway/logger"
	"alumni-gateway/service"
)

// UserContextHeader carries the base64url-encoded identity context to
// upstream services.
const UserContextHeader = "X-USER_ID"

const bearerPrefix = "Bearer "

// IRevocationChecker is the slice of the blacklist service the gate needs
// for its per-request revocation lookup.
type IRevocationChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// NewAuthMiddleware builds the gateway's authentication filter. Requests
// on open paths pass through untouched; everything else must present a
// valid bearer token and is forwarded with the derived identity header.
// Every validation failure terminates the request with a structured 401.
func NewAuthMiddleware(routes *service.RouteValidator, tokens *service.TokenService, revocations IRevocationChecker, checkRevocation bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The identity header is only ever set by the gate itself.
			r.Header.Del(UserContextHeader)

			if !routes.IsSecured(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
				common.NewAppError(http.StatusUnauthorized, "Missing Authorization Header", nil).Send(w)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrTokenExpired):
					common.NewAppError(http.StatusUnauthorized, "Token has expired", err).Send(w)
				case errors.Is(err, service.ErrTokenMalformed):
					common.NewAppError(http.StatusUnauthorized, "Malformed token", err).Send(w)
				default:
					common.NewAppError(http.StatusUnauthorized, "Invalid token", err).Send(w)
				}
				return
			}

			if checkRevocation && revocations != nil {
				revoked, err := revocations.IsTokenBlacklisted(r.Context(), tokenString)
				if err != nil {
					// Fail open: a store outage must not take down every
					// secured route. The token still passed signature and
					// expiry checks.
					logger.Log.WithError(err).Warn("Revocation check failed, proceeding on signature validity")
				} else if revoked {
					common.NewAppError(http.StatusUnauthorized, "Token has been revoked", nil).Send(w)
					return
				}
			}

			userContext := tokens.BuildUserContext(claims)
			payload, err := json.Marshal(userContext)
			if err != nil {
				common.NewAppError(http.StatusInternalServerError, "Failed to serialize user context", err).Send(w)
				return
			}
			r.Header.Set(UserContextHeader, base64.RawURLEncoding.EncodeToString(payload))

			next.ServeHTTP(w, r)
		})
	}
}
