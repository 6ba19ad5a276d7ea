// Package session owns the bearer credential's lifecycle and the
// authenticated principal derived from it. Nothing else reads or writes the
// persisted credential except through this package.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the read-only identity derived from a credential.
type Principal struct {
	Username string
	Admin    bool
}

// Claims are the token claims the device encodes at sign-in.
type Claims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts the principal from an access token. The console
// never holds the device's signing key, so the signature is not checked
// here; validity is established by the device's verification endpoint.
func DecodeClaims(token string) (Principal, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Principal{}, fmt.Errorf("parse access token: %w", err)
	}
	return Principal{Username: claims.Username, Admin: claims.Admin}, nil
}
