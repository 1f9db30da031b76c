package domain

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// ExpirationClassification is the derived, never persisted, classification of one card
// against a reference instant.
type ExpirationClassification struct {
	Card                Card
	Status              ExpirationStatus
	DaysUntilExpiration int
	// ExpirationDate is the last valid day of the card, nil for StatusNoExpiration.
	ExpirationDate *time.Time
	WarningLevel   WarningLevel
}

// ParseExpirationCode resolves a MMYY code to midnight of the last calendar day of that
// month in loc. Missing or malformed codes (wrong length, non-digits, month outside
// 1..12) report false instead of failing, so bad vendor data reads as "no expiration".
func ParseExpirationCode(code *string, loc *time.Location) (time.Time, bool) {
	if code == nil || len(*code) != 4 {
		return time.Time{}, false
	}

	value := *code
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return time.Time{}, false
		}
	}

	month := int(value[0]-'0')*10 + int(value[1]-'0')
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	year := 2000 + int(value[2]-'0')*10 + int(value[3]-'0')

	if loc == nil {
		loc = time.UTC
	}

	// Day 0 of the following month normalizes to the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc), true
}

// DaysUntil returns ceil((target - now) / 24h). A card expiring later today yields 0.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(float64(target.Sub(now)) / float64(day)))
}

// StatusForDays maps a signed day-count to an expiration status.
func StatusForDays(days int) ExpirationStatus {
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringSoonDays:
		return StatusExpiringSoon
	case days <= ExpiringLaterDays:
		return StatusExpiringLater
	default:
		return StatusValid
	}
}

// WarningLevelFor returns the display urgency for a status.
func WarningLevelFor(status ExpirationStatus) WarningLevel {
	switch status {
	case StatusExpired, StatusExpiringSoon:
		return WarningCritical
	case StatusExpiringLater:
		return WarningWarning
	default:
		return WarningNone
	}
}

// ClassifyCard classifies card against now. The expiration date is resolved in now's
// location. Never fails: a missing or malformed code yields StatusNoExpiration.
func ClassifyCard(card Card, now time.Time) ExpirationClassification {
	expiresAt, ok := ParseExpirationCode(card.ExpirationCode, now.Location())
	if !ok {
		return ExpirationClassification{
			Card:         card,
			Status:       StatusNoExpiration,
			WarningLevel: WarningNone,
		}
	}

	days := DaysUntil(expiresAt, now)
	status := StatusForDays(days)

	return ExpirationClassification{
		Card:                card,
		Status:              status,
		DaysUntilExpiration: days,
		ExpirationDate:      &expiresAt,
		WarningLevel:        WarningLevelFor(status),
	}
}
