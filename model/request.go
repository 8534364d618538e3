package model

// BlacklistTokenRequest defines the payload for revoking a single token.
// It includes validation tags so missing fields are reported by name at
// the entry point.
type BlacklistTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

// BlacklistAllRequest defines the payload for the bulk revocation
// operation on a (userId, userType) pair.
type BlacklistAllRequest struct {
	UserID   string `json:"userId" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}
