package handler

import (
	"encoding/json"
	"net/http"

	"alumni-gateway/common"
	"alumni-gateway/logger"
	"alumni-gateway/model"
	"alumni-gateway/service"
)

// BlacklistHandler exposes the gateway-internal token revocation API
// called by the identity service after logout.
type BlacklistHandler struct {
	service *service.BlacklistService
}

// NewBlacklistHandler creates a new BlacklistHandler with its dependencies.
func NewBlacklistHandler(s *service.BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{service: s}
}

// BlacklistToken godoc
// @Summary      Blacklist a token
// @Description  Records a revocation for the given token so the gate rejects it before its natural expiry.
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        request body model.BlacklistTokenRequest true "Token revocation request"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string "Missing required fields"
// @Failure      500  {object}  map[string]string "Persistence failure (including duplicate token)"
// @Router       /api/v1/token/blacklist [post]
func (h *BlacklistHandler) BlacklistToken(w http.ResponseWriter, r *http.Request) {
	var req model.BlacklistTokenRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.service.BlacklistToken(r.Context(), req.Token, req.UserID, req.UserType); err != nil {
		logger.Log.WithError(err).Error("Failed to blacklist token")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to blacklist token"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Token blacklisted successfully"})
}

// BlacklistAllUserTokens godoc
// @Summary      Bulk revocation for a user
// @Description  Removes every revocation record for the given user and user type.
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        request body model.BlacklistAllRequest true "Bulk revocation request"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string "Missing required fields"
// @Failure      500  {object}  map[string]string "Persistence failure"
// @Router       /api/v1/token/blacklist-all [post]
func (h *BlacklistHandler) BlacklistAllUserTokens(w http.ResponseWriter, r *http.Request) {
	var req model.BlacklistAllRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.service.BlacklistAllUserTokens(r.Context(), req.UserID, req.UserType); err != nil {
		logger.Log.WithError(err).Error("Failed to blacklist all user tokens")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to blacklist all user tokens"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "All user tokens blacklisted successfully"})
}

// IsTokenBlacklisted godoc
// @Summary      Check revocation status
// @Description  Reports whether a revocation record exists for the exact token value.
// @Tags         token
// @Produce      json
// @Param        token query string true "Raw token value"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string "Missing token parameter"
// @Failure      500  {object}  map[string]string "Store failure"
// @Router       /api/v1/token/is-blacklisted [get]
func (h *BlacklistHandler) IsTokenBlacklisted(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required parameter: token"})
		return
	}

	revoked, err := h.service.IsTokenBlacklisted(r.Context(), token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to check token blacklist status")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check token blacklist status"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":         token,
		"isBlacklisted": revoked,
	})
}

// CleanupExpiredTokens godoc
// @Summary      Sweep expired revocation records
// @Description  Removes records whose expiry date has passed. Intended for external cron or admin use; idempotent.
// @Tags         token
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string "Store failure"
// @Router       /api/v1/token/cleanup [post]
func (h *BlacklistHandler) CleanupExpiredTokens(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.CleanupExpiredTokens(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to clean up expired tokens")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to clean up expired tokens"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expired tokens cleaned up",
		"deleted": deleted,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
