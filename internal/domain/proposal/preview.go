package proposal

import (
	"strconv"
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

// FormatProductBlock renders the allocator input as plain text: one
// "* Name  [category: X]" line per product followed by an indented
// "- Option: 1X:750, 3X:2000" line per option.
//
// Price maps are listed in source order. Options without any price are
// omitted.
func FormatProductBlock(cat catalog.Catalog, meta catalog.MetaIndex) string {
	var lines []string
	for _, name := range cat.Names() {
		rec := cat[name]
		category := meta.CategoryOf(name, rec)
		if category == "" {
			category = "—"
		}
		lines = append(lines, "* "+name+"  [category: "+category+"]")
		for _, opt := range rec.Options {
			optName := opt.Name
			if optName == "" {
				optName = name
			}
			table := sourceTable(opt)
			if len(table) == 0 {
				continue
			}
			parts := make([]string, len(table))
			for i, pt := range table {
				parts[i] = pt.Label + ":" + formatPrice(pt.Price)
			}
			lines = append(lines, "    - "+optName+": "+strings.Join(parts, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func sourceTable(opt catalog.PriceOption) catalog.PriceTable {
	switch {
	case opt.Tiers != nil:
		return opt.Tiers
	case opt.Plans != nil:
		return opt.Plans
	case opt.Flat != nil:
		return catalog.PriceTable{{Label: pricing.BaseLabel, Price: *opt.Flat}}
	default:
		return opt.Pricing
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
