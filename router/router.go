package router

import (
	"net/http"

	"alumni-gateway/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "alumni-gateway/docs"
)

// NewRouter wires the gateway-internal endpoints and hands everything
// else to the authentication gate in front of the reverse proxy.
func NewRouter(blacklistHandler *handler.BlacklistHandler, gate func(http.Handler) http.Handler, proxy http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.HandleFunc("POST /api/v1/token/blacklist", blacklistHandler.BlacklistToken)
	mux.HandleFunc("POST /api/v1/token/blacklist-all", blacklistHandler.BlacklistAllUserTokens)
	mux.HandleFunc("GET /api/v1/token/is-blacklisted", blacklistHandler.IsTokenBlacklisted)
	mux.HandleFunc("POST /api/v1/token/cleanup", blacklistHandler.CleanupExpiredTokens)

	mux.Handle("/swagger/", httpSwagger.Handler())

	mux.Handle("/", gate(proxy))

	return mux
}
