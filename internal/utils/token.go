// Package utils provides helpers around the access token issued by the
// reservation service.  The front end does not hold the signing secret,
// so claims are decoded without verification; they are used for display
// and for cross-checking the role against the login form that was used,
// never for authorisation (the remote service re-validates the token on
// every call).
package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the subset of the token payload the front end reads.
type AccessClaims struct {
	UserID    int64
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// ErrMalformedToken is returned when the access token cannot be decoded.
var ErrMalformedToken = errors.New("malformed access token")

// ParseAccessClaims decodes the claims of an access token without
// verifying its signature.  A token that does not parse is reported as
// malformed; missing individual claims are left at their zero values.
func ParseAccessClaims(token string) (AccessClaims, error) {
	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return AccessClaims{}, ErrMalformedToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return AccessClaims{}, ErrMalformedToken
	}

	var out AccessClaims
	if v, ok := claims["user_id"].(float64); ok {
		out.UserID = int64(v)
	}
	if v, ok := claims["first_name"].(string); ok {
		out.FirstName = v
	}
	if v, ok := claims["last_name"].(string); ok {
		out.LastName = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	return out, nil
}
