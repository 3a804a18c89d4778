package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims and the portal login name.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"usr"`
}

// TokenIssuer signs and verifies portal session tokens (HS256).
type TokenIssuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewTokenIssuer(secretKey string, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: []byte(secretKey), validity: validity, now: time.Now}
}

func (i *TokenIssuer) Issue(username string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify returns the login name stored in tokenString.
// Expired tokens yield common.ErrTokenExpired, anything else unusable
// yields common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
