package app

import (
	"fmt"

	"github.com/allisson/cardwatch/internal/auth"
)

// TokenService returns the API token service. It verifies bearer tokens against
// API_TOKEN_HASH and is disabled when the hash is empty.
func (c *Container) TokenService() (*auth.TokenService, error) {
	err := c.once(&c.tokenServiceInit, "tokenService", func() (err error) {
		c.tokenService, err = auth.NewTokenService(c.config.APITokenHash)
		if err != nil {
			return fmt.Errorf("failed to create token service: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.tokenService, nil
}
