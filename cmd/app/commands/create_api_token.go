package commands

import (
	"fmt"
	"io"
	"log/slog"
)

// TokenGenerator creates a random API token and its hash.
type TokenGenerator interface {
	Generate() (plainToken, tokenHash string, err error)
}

// RunCreateAPIToken generates a bearer token for the /v1 API. Only the hash is meant to
// be configured on the server (API_TOKEN_HASH); the plain token is shown once.
func RunCreateAPIToken(generator TokenGenerator, logger *slog.Logger, writer io.Writer, format string) error {
	plainToken, tokenHash, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate api token: %w", err)
	}

	logger.Info("api token generated")

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"token":      plainToken,
			"token_hash": tokenHash,
		})
	}

	_, err = fmt.Fprintf(writer,
		"API token (store it now, it cannot be recovered):\n  %s\n\nAdd the hash to the server environment:\n  API_TOKEN_HASH='%s'\n",
		plainToken, tokenHash)
	return err
}
