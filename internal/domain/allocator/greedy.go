// Package allocator chooses one priced option per product within a budget.
//
// The fill-to-cap allocator runs in two phases:
//
//	baseline: every product takes its cheapest (option, tier) line,
//	          regardless of budget
//	upgrade:  repeated passes move each product to the cheapest strictly
//	          pricier line that keeps subtotal <= budget, until a pass
//	          changes nothing
//
// Line prices are seasonal and advertiser adjusted unit prices times the
// tier's duration in quarters. A baseline that already exceeds the budget is
// returned as is; there is no downgrade phase.
package allocator

import (
	"sort"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/eligibility"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

// Pick is the line chosen for one product.
type Pick struct {
	Product string
	Option  string
	Tier    string

	// UnitPrice is the effective base price of the tier.
	UnitPrice float64

	// LinePrice is UnitPrice times the tier duration.
	LinePrice float64
}

// Selection is the allocator output for one budget.
type Selection struct {
	Budget float64

	// Picks holds at most one pick per product, sorted by product name.
	Picks []Pick

	// Subtotal is the sum of line prices rounded to cents.
	Subtotal float64

	// Baseline is the subtotal after the baseline phase, rounded to cents.
	Baseline float64

	// Upgrades counts adopted upgrades.
	Upgrades int
}

// Pick returns the pick for a product.
func (s Selection) Pick(product string) (Pick, bool) {
	for _, p := range s.Picks {
		if p.Product == product {
			return p, true
		}
	}
	return Pick{}, false
}

// Products returns the picked product names in order.
func (s Selection) Products() []string {
	names := make([]string, len(s.Picks))
	for i, p := range s.Picks {
		names[i] = p.Product
	}
	return names
}

// OverBudget reports whether the subtotal exceeds the budget. This can only
// happen when the baseline itself did.
func (s Selection) OverBudget() bool {
	return s.Subtotal > pricing.RoundCents(s.Budget)
}

// candidate is one viable (option, tier) line for a product.
type candidate struct {
	option string
	tier   string
	unit   float64
	line   float64
}

// FillToCap allocates budget across products. Products without a viable
// price point get no pick.
func FillToCap(budget float64, products catalog.Catalog, meta catalog.MetaIndex, terms pricing.Terms) Selection {
	names := products.Names()
	cands := make(map[string][]candidate, len(names))
	current := make(map[string]candidate, len(names))
	var subtotal float64

	// Phase A: global minimum per product, earliest wins on ties.
	for _, name := range names {
		list := enumerate(name, products[name], meta, terms)
		if len(list) == 0 {
			continue
		}
		cands[name] = list
		best := list[0]
		for _, c := range list[1:] {
			if c.line < best.line {
				best = c
			}
		}
		current[name] = best
		subtotal += best.line
	}
	baseline := subtotal

	// Phase B: upgrade passes until nothing changes.
	upgrades := 0
	for improved := true; improved; {
		improved = false
		for _, name := range names {
			cur, ok := current[name]
			if !ok {
				continue
			}
			for _, c := range pricier(cands[name], cur.line) {
				if subtotal-cur.line+c.line <= budget {
					subtotal = subtotal - cur.line + c.line
					current[name] = c
					upgrades++
					improved = true
					break
				}
			}
		}
	}

	sel := Selection{
		Budget:   budget,
		Picks:    make([]Pick, 0, len(current)),
		Subtotal: pricing.RoundCents(subtotal),
		Baseline: pricing.RoundCents(baseline),
		Upgrades: upgrades,
	}
	for _, name := range names {
		c, ok := current[name]
		if !ok {
			continue
		}
		sel.Picks = append(sel.Picks, Pick{
			Product:   name,
			Option:    c.option,
			Tier:      c.tier,
			UnitPrice: c.unit,
			LinePrice: c.line,
		})
	}
	return sel
}

// enumerate lists every eligible line of a product in option order, each
// option's points in extractor order.
func enumerate(name string, rec catalog.ProductRecord, meta catalog.MetaIndex, terms pricing.Terms) []candidate {
	windows := meta.Windows(name, rec)
	var out []candidate
	for _, opt := range rec.Options {
		optName := opt.Name
		if optName == "" {
			optName = name
		}
		if !eligibility.OptionAllowed(name, optName, terms.IsAdvertiser) {
			continue
		}
		for _, pt := range pricing.Points(opt) {
			unit := pricing.EffectiveUnitPrice(name, optName, pt.Price, windows, terms)
			out = append(out, candidate{
				option: optName,
				tier:   pt.Label,
				unit:   unit,
				line:   pricing.LinePrice(rec, pt.Label, unit),
			})
		}
	}
	return out
}

// pricier returns candidates strictly above floor, cheapest first. Equal
// line prices keep enumeration order.
func pricier(list []candidate, floor float64) []candidate {
	var out []candidate
	for _, c := range list {
		if c.line > floor {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].line < out[j].line })
	return out
}
