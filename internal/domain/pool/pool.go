// Package pool splits the catalog and the budget into the tourist and
// industry pools and runs the allocator once per pool.
//
// Pools never share money: surplus left in one pool is not moved to the
// other.
package pool

import (
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/allocator"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

// Name identifies a pool.
type Name string

const (
	Tourist  Name = "tourist"
	Industry Name = "industry"
)

// NormalizeCategory maps a raw category to a pool name. Anything that
// mentions neither pool comes back lowercased and matches no pool.
func NormalizeCategory(raw string) string {
	r := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(r, string(Tourist)):
		return string(Tourist)
	case strings.Contains(r, string(Industry)):
		return string(Industry)
	default:
		return r
	}
}

// Partition splits a catalog by category. Products with an unrecognized
// category land in neither result.
func Partition(cat catalog.Catalog, meta catalog.MetaIndex) (tourist, industry catalog.Catalog) {
	tourist, industry = catalog.Catalog{}, catalog.Catalog{}
	for name, rec := range cat {
		switch Name(NormalizeCategory(meta.CategoryOf(name, rec))) {
		case Tourist:
			tourist[name] = rec
		case Industry:
			industry[name] = rec
		}
	}
	return tourist, industry
}

// SubBudget is a pool's share of the total budget, unrounded.
func SubBudget(total, pct float64) float64 {
	return total * pct / 100
}

// Split is how a total budget is divided between pools.
type Split struct {
	TotalBudget float64
	TouristPct  float64
	IndustryPct float64
}

// Pool is the allocation result for one pool.
type Pool struct {
	Name      Name
	Budget    float64
	Selection allocator.Selection
}

// Remaining is the unspent part of the pool budget. Negative when the pool
// is over budget.
func (p Pool) Remaining() float64 {
	return pricing.RoundCents(p.Budget - p.Selection.Subtotal)
}

// Result holds both pools and their combined total.
type Result struct {
	Tourist    Pool
	Industry   Pool
	GrandTotal float64
}

// Pools returns the pools in reporting order.
func (r Result) Pools() []Pool {
	return []Pool{r.Tourist, r.Industry}
}

// Allocate runs the allocator for each pool against its sub-budget.
func Allocate(split Split, tourist, industry catalog.Catalog, meta catalog.MetaIndex, terms pricing.Terms) Result {
	tBudget := SubBudget(split.TotalBudget, split.TouristPct)
	iBudget := SubBudget(split.TotalBudget, split.IndustryPct)

	t := Pool{Name: Tourist, Budget: tBudget, Selection: allocator.FillToCap(tBudget, tourist, meta, terms)}
	i := Pool{Name: Industry, Budget: iBudget, Selection: allocator.FillToCap(iBudget, industry, meta, terms)}

	return Result{
		Tourist:    t,
		Industry:   i,
		GrandTotal: pricing.SumCents(t.Selection.Subtotal, i.Selection.Subtotal),
	}
}

// Audit summarizes a partition before allocation.
type Audit struct {
	Pool     Name
	Budget   float64
	Products []string
}

// AuditPartition reports each pool's sub-budget and product names.
func AuditPartition(split Split, tourist, industry catalog.Catalog) []Audit {
	return []Audit{
		{Pool: Tourist, Budget: SubBudget(split.TotalBudget, split.TouristPct), Products: tourist.Names()},
		{Pool: Industry, Budget: SubBudget(split.TotalBudget, split.IndustryPct), Products: industry.Names()},
	}
}
