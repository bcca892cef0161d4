// Package proposal turns allocator picks into priced display lines.
//
// Discounts are resolved here, after allocation, and never change what the
// allocator picked.
package proposal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/allocator"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pool"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

var qtyPattern = regexp.MustCompile(`^(\d+)\s*[xX]$`)

// QtyFromTier reads an insertion count from tiers like "3X" or "12 x".
// Other labels count as one.
func QtyFromTier(tier string) int {
	m := qtyPattern.FindStringSubmatch(strings.TrimSpace(tier))
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return n
}

// Line is one row of a proposal table.
type Line struct {
	Pool    pool.Name
	Product string
	Option  string
	Tier    string
	Qty     int

	UnitPriceOriginal float64
	UnitPrice         float64
	Discount          string

	TotalOriginal float64
	Total         float64
}

// Options are the display-time purchase flags.
type Options struct {
	Terms          pricing.Terms
	PrepayFullYear bool
}

// BuildLines prices every pick in a pool. allProducts is the set of products
// picked across both pools; a product counts as bundled when anything else
// is in that set.
func BuildLines(name pool.Name, sel allocator.Selection, allProducts map[string]bool, opts Options) []Line {
	lines := make([]Line, 0, len(sel.Picks))
	for _, p := range sel.Picks {
		qty := QtyFromTier(p.Tier)
		d := pricing.ResolveDiscount(pricing.DiscountRequest{
			Product:          p.Product,
			Option:           p.Option,
			BasePrice:        p.UnitPrice,
			Tier:             p.Tier,
			HasOtherProducts: hasOthers(allProducts, p.Product),
			PrepayFullYear:   opts.PrepayFullYear,
			IsAdvertiser:     opts.Terms.IsAdvertiser,
			BillingDate:      opts.Terms.BillingDate,
		})
		lines = append(lines, Line{
			Pool:              name,
			Product:           p.Product,
			Option:            p.Option,
			Tier:              p.Tier,
			Qty:               qty,
			UnitPriceOriginal: p.UnitPrice,
			UnitPrice:         d.Price,
			Discount:          d.Label,
			TotalOriginal:     pricing.RoundCents(p.UnitPrice * float64(qty)),
			Total:             pricing.RoundCents(d.Price * float64(qty)),
		})
	}
	return lines
}

func hasOthers(all map[string]bool, product string) bool {
	for name, in := range all {
		if in && name != product {
			return true
		}
	}
	return false
}

// PickedProducts collects the product names picked in any of the pools.
func PickedProducts(pools ...pool.Pool) map[string]bool {
	out := make(map[string]bool)
	for _, p := range pools {
		for _, pick := range p.Selection.Picks {
			out[pick.Product] = true
		}
	}
	return out
}

// Totals sums the original and discounted totals of lines.
func Totals(lines []Line) (original, discounted float64) {
	origs := make([]float64, len(lines))
	finals := make([]float64, len(lines))
	for i, l := range lines {
		origs[i] = l.TotalOriginal
		finals[i] = l.Total
	}
	return pricing.SumCents(origs...), pricing.SumCents(finals...)
}
