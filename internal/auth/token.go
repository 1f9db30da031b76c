// Package auth issues and verifies the static API bearer token protecting the /v1 routes.
//
// Only the Argon2id hash of the token is configured on the server (API_TOKEN_HASH); the
// plain token is printed once by the create-api-token command.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"sync"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/blake2b"

	apperrors "github.com/allisson/cardwatch/internal/errors"
)

// TokenVerifier checks presented bearer tokens.
type TokenVerifier interface {
	// Enabled reports whether a token hash is configured.
	Enabled() bool
	// Verify returns ErrUnauthorized unless plainToken matches the configured hash.
	Verify(plainToken string) error
}

// TokenService generates API tokens and verifies them against a stored hash.
type TokenService struct {
	hasher    *pwdhash.PasswordHasher
	tokenHash string

	// verified caches the blake2b digest of the last accepted token so Argon2id runs
	// once per token instead of once per request.
	mu       sync.RWMutex
	verified []byte
}

// NewTokenService creates a TokenService. An empty tokenHash disables verification.
func NewTokenService(tokenHash string) (*TokenService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &TokenService{hasher: hasher, tokenHash: tokenHash}, nil
}

// Generate creates a random 32-byte URL-safe token and its Argon2id hash.
func (s *TokenService) Generate() (plainToken, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}
	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)

	tokenHash, err = s.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to hash token")
	}
	return plainToken, tokenHash, nil
}

// Enabled reports whether a token hash is configured.
func (s *TokenService) Enabled() bool {
	return s.tokenHash != ""
}

// Verify checks plainToken against the configured hash.
func (s *TokenService) Verify(plainToken string) error {
	if plainToken == "" {
		return apperrors.ErrUnauthorized
	}

	digest := blake2b.Sum256([]byte(plainToken))

	s.mu.RLock()
	cached := s.verified
	s.mu.RUnlock()
	if cached != nil && subtle.ConstantTimeCompare(cached, digest[:]) == 1 {
		return nil
	}

	ok, err := s.hasher.Verify([]byte(plainToken), s.tokenHash)
	if err != nil || !ok {
		return apperrors.ErrUnauthorized
	}

	s.mu.Lock()
	s.verified = digest[:]
	s.mu.Unlock()
	return nil
}
