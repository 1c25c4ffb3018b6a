package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Issuer names this service in every token it signs. Parse rejects tokens
// minted by anyone else, even when they share the secret.
const Issuer = "inklet-core"

// SessionTTL is the lifetime of issued login tokens.
const SessionTTL = 7 * 24 * time.Hour

const defaultSecret = "inklet-secret-change-me"

var secret = []byte(defaultSecret)

// ErrInvalidToken covers every way a credential can fail: bad signature,
// wrong algorithm, foreign issuer, expiry, malformed payload. Callers get
// one sentinel; the distinction is never surfaced to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

// SetSecret configures the JWT signing secret (call on startup).
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// Claims is the JWT payload. The account role is never embedded; it is
// re-read from the store on every request so role changes take effect
// immediately.
type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Sign issues a session token for the given account ID, valid for SessionTTL.
func Sign(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
}

// Parse validates a token string and returns its claims, or ErrInvalidToken.
func Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwtlib.Token) (interface{}, error) { return secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
