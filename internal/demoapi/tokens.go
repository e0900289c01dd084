package demoapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	purposeAccess = "access"
	purposeReset  = "reset"

	resetTokenTTL = time.Hour
)

var errWrongPurpose = errors.New("token has the wrong purpose")

// TokenIssuer signs and validates HS256 tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer. A nil clock uses time.Now.
func NewTokenIssuer(secret string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

// GenerateJWT generates an access token for a user
func (t *TokenIssuer) GenerateJWT(userID string) (string, error) {
	return t.sign(userID, purposeAccess, t.ttl)
}

// GenerateResetToken generates a short-lived password reset token
func (t *TokenIssuer) GenerateResetToken(userID string) (string, error) {
	return t.sign(userID, purposeReset, resetTokenTTL)
}

// ValidateJWT validates an access token and returns the user ID
func (t *TokenIssuer) ValidateJWT(tokenString string) (string, error) {
	return t.validate(tokenString, purposeAccess)
}

// ValidateResetToken validates a reset token and returns the user ID
func (t *TokenIssuer) ValidateResetToken(tokenString string) (string, error) {
	return t.validate(tokenString, purposeReset)
}

func (t *TokenIssuer) sign(userID, purpose string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": purpose,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (t *TokenIssuer) validate(tokenString, purpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	if p, _ := claims["purpose"].(string); p != purpose {
		return "", errWrongPurpose
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}
