// Package views derives read-only summaries (calendar markers, statistics,
// expiry warnings) from a store.State. Nothing here mutates or caches.
package views

import (
	"strconv"

	"github.com/chrisdamba/weaning/internal/models"
)

type ExpiryLevel string

const (
	ExpiryExpired ExpiryLevel = "expired"
	ExpiryNear    ExpiryLevel = "near"
	ExpiryNormal  ExpiryLevel = "normal"
	// ExpiryUnknown is reported when the cube's expiry date does not parse.
	ExpiryUnknown ExpiryLevel = "unknown"
)

type Expiry struct {
	Days  int // expiryDate - reference, in days
	Level ExpiryLevel
}

// ExpiryStatus classifies a cube against ref ("YYYY-MM-DD"). Every screen
// uses this one rule: negative is expired, 0..3 is near, anything later is normal.
func ExpiryStatus(cube models.CubeRecord, ref string) Expiry {
	days, err := models.DaysBetween(ref, cube.ExpiryDate)
	if err != nil {
		return Expiry{Level: ExpiryUnknown}
	}
	switch {
	case days < 0:
		return Expiry{Days: days, Level: ExpiryExpired}
	case days <= models.NearExpiryDays:
		return Expiry{Days: days, Level: ExpiryNear}
	default:
		return Expiry{Days: days, Level: ExpiryNormal}
	}
}

// Label renders the day difference the way the cube list shows it.
func (e Expiry) Label() string {
	switch e.Level {
	case ExpiryExpired:
		return "expired"
	case ExpiryUnknown:
		return "?"
	}
	return "D-" + strconv.Itoa(e.Days)
}
