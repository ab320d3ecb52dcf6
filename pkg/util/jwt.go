package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const csrfTokenType = "csrf"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// CSRFClaims binds a form token to the session cookie that requested the form
type CSRFClaims struct {
	SessionID string `json:"sid"`
	Type      string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateCSRFToken issues an HS256 token for the given session id
func GenerateCSRFToken(sessionID, secret string, expiry time.Duration) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: empty session id", ErrInvalidToken)
	}
	now := time.Now()
	claims := CSRFClaims{
		SessionID: sessionID,
		Type:      csrfTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses a CSRF token and returns its claims
func ValidateToken(tokenString, secret string) (*CSRFClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CSRFClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CSRFClaims)
	if !ok || !token.Valid || claims.Type != csrfTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateCSRFToken checks that the token is valid and was issued for sessionID
func ValidateCSRFToken(tokenString, sessionID, secret string) error {
	if tokenString == "" || sessionID == "" {
		return ErrInvalidToken
	}
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return err
	}
	if claims.SessionID != sessionID {
		return fmt.Errorf("%w: session mismatch", ErrInvalidToken)
	}
	return nil
}
