package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims binds a user to one revocable session row.
type AccessClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs an HS256 token for userID carrying the session token as sid.
func IssueAccessToken(secret string, userID uuid.UUID, sessionToken uuid.UUID, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	claims := AccessClaims{
		SessionID: sessionToken.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies the signature and expiry and returns the user id and session token.
func ParseAccessToken(secret, raw string) (uuid.UUID, string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.SessionID == "" {
		return uuid.Nil, "", ErrInvalidToken
	}

	return userID, claims.SessionID, nil
}
