package platform

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// StaticTokens serves plain API tokens from configuration.
type StaticTokens map[domain.Currency]string

// Token returns the configured token for the merchant account.
func (t StaticTokens) Token(ctx context.Context, currency domain.Currency) (string, error) {
	token := t[currency]
	if token == "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "no api token configured for %s", currency)
	}
	return token, nil
}

// TokenResolver decrypts base64 ciphertext tokens with a gocloud.dev/secrets keeper.
// Supported keeper URIs: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
type TokenResolver struct {
	keeper      *secrets.Keeper
	ciphertexts StaticTokens
}

// OpenTokenResolver opens the keeper at keyURI.
func OpenTokenResolver(ctx context.Context, keyURI string, ciphertexts StaticTokens) (*TokenResolver, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return &TokenResolver{keeper: keeper, ciphertexts: ciphertexts}, nil
}

// Token decrypts the token of the merchant account.
func (r *TokenResolver) Token(ctx context.Context, currency domain.Currency) (string, error) {
	encoded, err := r.ciphertexts.Token(ctx, currency)
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "api token for %s is not base64", currency)
	}
	plaintext, err := r.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt api token for %s: %w", currency, err)
	}
	return string(plaintext), nil
}

// Close releases the keeper.
func (r *TokenResolver) Close() error {
	return r.keeper.Close()
}
