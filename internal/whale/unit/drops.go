// Package unit converts XRP amounts between drops and XRP.
package unit

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

// DropsPerXRP is the number of drops in one XRP.
const DropsPerXRP = 1_000_000

const dropsExponent = -6

// MaxDrops is the total XRP supply in drops; larger amounts cannot exist.
const MaxDrops = 100_000_000_000 * DropsPerXRP

var (
	errEmpty     = errors.New("empty amount")
	errNotDigits = errors.New("not a non-negative integer")
	errTooLarge  = errors.New("exceeds total XRP supply")

	maxDrops = decimal.NewFromInt(MaxDrops)
)

// ToMajorUnits converts a drops string to XRP. The shift is done in decimal so
// the only rounding is the final conversion to float64.
func ToMajorUnits(raw string) (float64, error) {
	if raw == "" {
		return 0, &entity.ConversionError{Raw: raw, Err: errEmpty}
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, &entity.ConversionError{Raw: raw, Err: errNotDigits}
		}
	}

	drops, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, &entity.ConversionError{Raw: raw, Err: err}
	}
	if drops.GreaterThan(maxDrops) {
		return 0, &entity.ConversionError{Raw: raw, Err: errTooLarge}
	}

	return drops.Shift(dropsExponent).InexactFloat64(), nil
}
