package model

import "github.com/golang-jwt/jwt/v5"

// User type values carried in the userType claim.
const (
	UserTypeAdmin  = "ADMIN"
	UserTypeUser   = "USER"
	UserTypeAlumni = "ALUMNI"
)

// AppClaims is the full claim set minted by the identity service. Admin
// tokens carry Email instead of Username; everything else is shared.
type AppClaims struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	UserID    string `json:"userId,omitempty"`
	AdminID   int64  `json:"adminId,omitempty"`
	Role      string `json:"role,omitempty"`
	UserType  string `json:"userType,omitempty"`
	TokenType string `json:"tokenType,omitempty"`
	jwt.RegisteredClaims
}
