// Package pricing resolves the price of a product option.
//
// Three stages feed each other:
//
//	base tier price -> seasonal window -> advertiser override  (allocator input)
//	allocator pick  -> discount rules                          (display only)
//
// Nothing here returns an error. Malformed labels sort last, missing
// duration multipliers count as one quarter and seasonal misses fall back to
// the base price.
package pricing

import (
	"math"
	"sort"
	"strconv"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// BaseLabel is the tier label given to a single flat price.
const BaseLabel = "base"

// Points returns the option's price points sorted ascending by the leading
// numeric token of the label, ties broken by price. Labels without a
// parsable number sort last.
func Points(opt catalog.PriceOption) []catalog.PricePoint {
	var items []catalog.PricePoint
	switch {
	case opt.Tiers != nil:
		items = opt.Tiers.Clone()
	case opt.Plans != nil:
		items = opt.Plans.Clone()
	case opt.Flat != nil:
		items = []catalog.PricePoint{{Label: BaseLabel, Price: *opt.Flat}}
	case opt.Pricing != nil:
		items = opt.Pricing.Clone()
	default:
		return []catalog.PricePoint{}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := labelKey(items[i].Label), labelKey(items[j].Label)
		if ki != kj {
			return ki < kj
		}
		return items[i].Price < items[j].Price
	})
	return items
}

// labelKey reads the first number in a label. A run starts at a digit, or
// at a dot directly followed by one, and continues over digits and dots.
// "1X" -> 1, "Std. 3X" -> 3, "12 Months" -> 12, "Retail" -> +Inf.
func labelKey(label string) float64 {
	start := -1
	end := len(label)
	for i := 0; i < len(label); i++ {
		c := label[i]
		if start < 0 {
			if isDigit(c) || (c == '.' && i+1 < len(label) && isDigit(label[i+1])) {
				start = i
			}
			continue
		}
		if !isDigit(c) && c != '.' {
			end = i
			break
		}
	}
	if start < 0 {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(label[start:end], 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
