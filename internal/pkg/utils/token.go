package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

type SessionTokenClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

func GenerateSessionToken(sessionID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionTokenClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("SignedString: %w", err)
	}
	return token, nil
}

func ParseSessionToken(token, secret string) (*SessionTokenClaims, error) {
	claims := new(SessionTokenClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnauthorized, err.Error())
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, constants.ErrUnauthorized
	}

	return claims, nil
}
