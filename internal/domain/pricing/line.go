package pricing

import (
	"strconv"
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// DurationMultiplier returns the number of quarters a tier runs for,
// never less than one.
func DurationMultiplier(rec catalog.ProductRecord, tier string) float64 {
	raw, ok := rec.DurationQuarters[strings.ToUpper(tier)]
	if !ok {
		return 1
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// LinePrice is the cost of buying a tier for its full duration.
func LinePrice(rec catalog.ProductRecord, tier string, base float64) float64 {
	return base * DurationMultiplier(rec, tier)
}
