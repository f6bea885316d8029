package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"jobbify/internal/caching"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenTTL = 24 * time.Hour
	resetTokenTTL  = 60 * time.Minute
)

// TokenService issues and validates bearer tokens and manages single-use
// password-reset tokens.
type TokenService interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
	CreateResetToken(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ConsumeResetToken(ctx context.Context, token string, email string) (uuid.UUID, error)
	ResetURL(appURL, token, email string) string
}

// TokenClaims represents JWT claims for access tokens
type TokenClaims struct {
	jwt.RegisteredClaims
}

type tokenService struct {
	cacheSvc  caching.CacheService
	jwtSecret []byte
}

func NewTokenService(cacheSvc caching.CacheService, jwtSecret string) TokenService {
	return &tokenService{
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *tokenService) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobbify-api",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateToken(token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := jwtToken.Claims.(*TokenClaims)
	if !ok || !jwtToken.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// CreateResetToken stores a sha256 hash of a fresh random token keyed by the
// user's email. The plaintext token only ever appears in the reset URL.
func (s *tokenService) CreateResetToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	token := generateSecureToken()
	cacheKey := resetTokenKey(hashToken(token), email)
	if err := s.cacheSvc.SetString(ctx, cacheKey, userID.String(), resetTokenTTL); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ConsumeResetToken validates and deletes the token; a second consume of the
// same token fails.
func (s *tokenService) ConsumeResetToken(ctx context.Context, token, email string) (uuid.UUID, error) {
	cacheKey := resetTokenKey(hashToken(token), email)
	userIDStr, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid or expired reset token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid reset token data")
	}
	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		return uuid.Nil, fmt.Errorf("failed to invalidate reset token: %w", err)
	}
	return userID, nil
}

func (s *tokenService) ResetURL(appURL, token, email string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&email=%s", appURL, url.QueryEscape(token), url.QueryEscape(email))
}

func resetTokenKey(tokenHash, email string) string {
	return fmt.Sprintf("password_reset:%s:%s", email, tokenHash)
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// hashToken creates a SHA-256 hash of the token for secure storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
