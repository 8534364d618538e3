// Package client is the revocation-API client used by the identity
// service after issuing a logout. Registration failures are logged and
// swallowed so logout always succeeds locally even when the gateway is
// unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"alumni-gateway/logger"

	"github.com/sirupsen/logrus"
)

// BlacklistClient posts revocations to the gateway's internal token API.
type BlacklistClient struct {
	gatewayURL string
	httpClient *http.Client
}

// NewBlacklistClient creates a client for the given gateway base URL.
func NewBlacklistClient(gatewayURL string) *BlacklistClient {
	return &BlacklistClient{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// BlacklistToken registers a single-token revocation. Failures are never
// propagated to the caller.
func (c *BlacklistClient) BlacklistToken(ctx context.Context, token, userID, userType string) {
	c.post(ctx, "/api/v1/token/blacklist", map[string]string{
		"token":    token,
		"userId":   userID,
		"userType": userType,
	})
	logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"user_type": userType,
	}).Info("Token revocation registered via gateway")
}

// BlacklistAllUserTokens registers a bulk revocation for a user. Failures
// are never propagated to the caller.
func (c *BlacklistClient) BlacklistAllUserTokens(ctx context.Context, userID, userType string) {
	c.post(ctx, "/api/v1/token/blacklist-all", map[string]string{
		"userId":   userID,
		"userType": userType,
	})
	logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"user_type": userType,
	}).Info("Bulk token revocation registered via gateway")
}

func (c *BlacklistClient) post(ctx context.Context, path string, payload map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to encode revocation request")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+path, bytes.NewReader(body))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build revocation request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Error("Failed to reach gateway for token revocation")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Error("Gateway rejected token revocation request")
	}
}
