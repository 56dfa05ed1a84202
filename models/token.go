package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT bearer token with convenience accessors used by both
// the server (issuing and validating) and the client adapter (carrying the
// compact form in the Authorization header).
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard claim set (sub, exp, iat,
	// iss) defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation, ready for the
	// Authorization header.
	SignedString string `json:"-"`

	// UserID caches the parsed "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("extract user id from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("convert token subject to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization. Implements fmt.Stringer.
func (t *Token) String() string {
	return t.SignedString
}
