package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies operator tokens (HS256)
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewTokenService creates a new TokenService. expiresIn is the token
// lifetime in seconds.
func NewTokenService(secret string, expiresIn int) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: time.Duration(expiresIn) * time.Second,
	}
}

// Generate signs a token carrying the operator's identity claims
func (s *TokenService) Generate(adminID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token, returning its claims
func (s *TokenService) Validate(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
