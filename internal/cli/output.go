package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pool"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

// PrintHeader prints the run header
func PrintHeader(w io.Writer, p *service.Proposal) {
	fmt.Fprintf(w, "ateema: proposal %s (segment: %s)\n", p.ID, p.Segment)
}

// PrintPoolAudit prints each pool's sub-budget and products before allocation results.
func PrintPoolAudit(w io.Writer, p *service.Proposal) {
	fmt.Fprintln(w, "\n=== Focus Split & Pools ===")
	fmt.Fprintf(w, "Total budget: %s | split: %.1f%% tourist / %.1f%% industry\n",
		usd(p.Budget, 0), p.TouristPct, p.IndustryPct)
	for _, sec := range p.Sections() {
		names := sec.Pool.Selection.Products()
		list := strings.Join(names, ", ")
		if list == "" {
			list = "—"
		}
		fmt.Fprintf(w, "%-14s %s  | %d products: %s\n",
			poolLabel(sec.Pool.Name)+" pool:", usd(sec.Pool.Budget, 0), len(names), list)
	}
	if len(p.MissingProducts) > 0 {
		fmt.Fprintf(w, "Not in catalog: %s\n", strings.Join(p.MissingProducts, ", "))
	}
}

// PrintSelections prints every pool's picks and discounted lines.
func PrintSelections(w io.Writer, p *service.Proposal) {
	for _, sec := range p.Sections() {
		sel := sec.Pool.Selection
		fmt.Fprintf(w, "\n[%s] Subtotal: %s of %s (remaining %s, %d upgrades)\n",
			poolLabel(sec.Pool.Name), usd(sel.Subtotal, 0), usd(sec.Pool.Budget, 0),
			usd(sec.Pool.Remaining(), 2), sel.Upgrades)
		for _, line := range sec.Lines {
			tier := ""
			if line.Tier != pricing.BaseLabel {
				tier = " · " + line.Tier
			}
			pick, _ := sel.Pick(line.Product)
			fmt.Fprintf(w, " - %s: %s%s → %s", line.Product, line.Option, tier, usd(pick.LinePrice, 0))
			if line.Discount != "" {
				fmt.Fprintf(w, "  [%s: %d × %s = %s]", line.Discount, line.Qty, usd(line.UnitPrice, 2), usd(line.Total, 2))
			}
			fmt.Fprintln(w)
		}
		if !sec.Validation.Valid {
			fmt.Fprintf(w, "   WARNING: %s\n", sec.Validation.Reason)
		}
	}
}

// PrintGrandTotal prints the grand total against the soft cap.
func PrintGrandTotal(w io.Writer, p *service.Proposal) {
	v := p.Validation
	status := "within cap"
	if !v.Valid {
		status = "OVER CAP"
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Grand total: %s | budget %s | cap %s | %s\n",
		usd(p.GrandTotal, 2), usd(v.Budget, 2), usd(v.Cap, 2), status)
	if p.DiscountedTotal != p.GrandTotal {
		fmt.Fprintf(w, "After display discounts: %s\n", usd(p.DiscountedTotal, 2))
	}
	if v.Reason != "" {
		fmt.Fprintf(w, "%s\n", v.Reason)
	}
}

// PrintPreview prints the allocator input block.
func PrintPreview(w io.Writer, block string) {
	if block == "" {
		return
	}
	fmt.Fprintln(w, "\n=== Allocator Input ===")
	fmt.Fprintln(w, block)
}

// PrintProposal prints a full text report.
func PrintProposal(w io.Writer, p *service.Proposal) {
	PrintHeader(w, p)
	PrintPoolAudit(w, p)
	PrintSelections(w, p)
	PrintGrandTotal(w, p)
}

// PrintDiscount prints a resolved discount.
func PrintDiscount(w io.Writer, d pricing.Discount) {
	if d.Label == "" {
		fmt.Fprintf(w, "Final price: %s (no discount)\n", usd(d.Price, 2))
		return
	}
	fmt.Fprintf(w, "Final price: %s (%s)\n", usd(d.Price, 2), d.Label)
}

// PrintProducts prints one line per product with its pool and option count.
func PrintProducts(w io.Writer, products []dto.ProductResponse) {
	for _, p := range products {
		poolName := p.Pool
		if poolName == "" {
			poolName = "-"
		}
		fmt.Fprintf(w, "%-40s %-9s %d options\n", p.Name, poolName, len(p.Options))
	}
	fmt.Fprintf(w, "%d products\n", len(products))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func poolLabel(n pool.Name) string {
	switch n {
	case pool.Tourist:
		return "Tourist"
	case pool.Industry:
		return "Industry"
	}
	return string(n)
}

// usd formats an amount as $1,234 or $1,234.50. decimal does the rounding so
// half-cents round away from zero.
func usd(amount float64, places int32) string {
	d := decimal.NewFromFloat(amount).Round(places)
	sign := ""
	if d.IsNegative() {
		sign, d = "-", d.Abs()
	}
	f, _ := d.Float64()
	return sign + "$" + humanize.FormatFloat("#,###."+strings.Repeat("#", int(places)), f)
}
