package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

const (
	TokenTypeAccess = "access"
	issuer          = "seatbook"
)

// JWTClaims represents the claims carried by an access token
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// Identity is what the authentication gate resolves a request to
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}
