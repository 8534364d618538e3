package model

// CurrentUserContext is the per-request identity derived from token claims.
// It is JSON-serialized, base64url-encoded and forwarded upstream in the
// X-USER_ID header so services can reconstruct identity without
// re-validating the token.
type CurrentUserContext struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
	Role     string `json:"role"`
}
