package usecase

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

// fingerprint hashes the platform-sourced content of a customer with BLAKE2b-256.
// Sync bookkeeping fields are zeroed so an unchanged record keeps its fingerprint.
func fingerprint(c *domain.Customer) (string, error) {
	content := *c
	content.Fingerprint = ""
	content.SyncedAt = time.Time{}

	data, err := json.Marshal(content)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal customer for fingerprint")
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// countChanges returns how many customers were added, modified or removed relative to
// the stored fingerprints.
func countChanges(previous map[string]string, current []*domain.Customer) int {
	changed := 0
	seen := make(map[string]struct{}, len(current))
	for _, c := range current {
		seen[c.ID] = struct{}{}
		if previous[c.ID] != c.Fingerprint {
			changed++
		}
	}
	for id := range previous {
		if _, ok := seen[id]; !ok {
			changed++
		}
	}
	return changed
}
