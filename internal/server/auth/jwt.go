// Package auth issues and parses the bearer tokens that carry a session
// identifier to the transports.
//
// A token is only a pointer to a server-side session row: it has no
// expiry of its own and stops working as soon as the row is deleted on
// logout.
package auth

import (
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "rollcall"

// Claims holds the registered claims plus the session identity.
// RegisteredClaims.ID is the session id.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"usr"`
}

// GenerateToken signs an HS256 token for the given session.
func GenerateToken(sessionID, username string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: username,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and returns the claims.
// Any failure is reported as common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
