package utils

import (
	"crypto/rsa"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims are the claims carried by an issued access token: the
// standard registered claims plus the space-delimited scope claim.
type AccessTokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Scopes returns the scope claim split into individual scope strings.
func (c *AccessTokenClaims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// GenerateJWT builds and signs an RS256 access token for the given client.
// The key id is stamped into the token header so verifiers can select the
// right key from the published key set.
func GenerateJWT(clientID string, scopes []string, jti string, key *rsa.PrivateKey, keyID string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   clientID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyID
	return token.SignedString(key)
}

// ParseAndValidateJWT parses a token string against the given public key,
// validating signature, algorithm and time-based claims. Used where a full
// JWKS lookup is unnecessary (the verifier middleware goes through a
// jwt.Keyfunc instead).
func ParseAndValidateJWT(tokenString string, publicKey *rsa.PublicKey) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
