package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeCache is an in-memory stand-in for the redis cache service.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = value
	return nil
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.store[key]
	if !ok {
		return "", assert.AnError
	}
	return value, nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, key)
	return nil
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService(newFakeCache(), "test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "jobbify-api", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(23*time.Hour)))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewTokenService(newFakeCache(), "secret-a")
	verifier := NewTokenService(newFakeCache(), "secret-b")

	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestResetToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(newFakeCache(), "test-secret")
	userID := uuid.New()

	token, err := svc.CreateResetToken(ctx, userID, "jane@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	resolved, err := svc.ConsumeResetToken(ctx, token, "jane@example.com")
	assert.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResetToken_SingleUse(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(newFakeCache(), "test-secret")

	token, err := svc.CreateResetToken(ctx, uuid.New(), "jane@example.com")
	assert.NoError(t, err)

	_, err = svc.ConsumeResetToken(ctx, token, "jane@example.com")
	assert.NoError(t, err)

	// second consume fails, the token is gone
	resolved, err := svc.ConsumeResetToken(ctx, token, "jane@example.com")
	assert.Equal(t, uuid.Nil, resolved)
	assert.Error(t, err)
}

func TestResetToken_WrongEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(newFakeCache(), "test-secret")

	token, err := svc.CreateResetToken(ctx, uuid.New(), "jane@example.com")
	assert.NoError(t, err)

	resolved, err := svc.ConsumeResetToken(ctx, token, "someone-else@example.com")
	assert.Equal(t, uuid.Nil, resolved)
	assert.Error(t, err)
}

func TestResetURL_EscapesQueryValues(t *testing.T) {
	svc := NewTokenService(newFakeCache(), "test-secret")

	url := svc.ResetURL("http://localhost:8080", "tok+en", "jane@example.com")
	assert.Equal(t, "http://localhost:8080/reset-password?token=tok%2Ben&email=jane%40example.com", url)
}
