package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Errors returned by JWTService.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrInvalidSecretLength = errors.New("JWT secret must be at least 32 characters")
)

// JWTConfig configures token verification.
type JWTConfig struct {
	// Secret is the HMAC signing key shared with the issuing identity
	// system. Must be at least 32 characters.
	Secret string

	// Issuer, if set, is checked against the token's iss claim.
	Issuer string
}

// JWTService validates bearer tokens presented by sync clients.
type JWTService struct {
	config JWTConfig
}

// NewJWTService builds a JWTService, rejecting an obviously weak secret.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}
	return &JWTService{config: config}, nil
}

// ValidateToken parses and verifies tokenString, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parserOpts := []jwt.ParserOption{}
	if s.config.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
