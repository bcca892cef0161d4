// Package catalog defines the advertising product catalog consumed by the
// pricing and allocation packages.
//
// A Catalog is keyed by product name. Records are treated as immutable once
// loaded; anything that needs a narrowed view (eligibility filtering, pool
// partitioning) builds a new Catalog instead of editing one in place.
package catalog

import (
	"sort"
)

// PricePoint is one named pricing level of an option, e.g. "1X" or "Retail".
type PricePoint struct {
	Label string
	Price float64
}

// PriceTable is an ordered list of price points. Source order is preserved
// so that ties between equal sort keys resolve deterministically.
type PriceTable []PricePoint

// Clone returns a copy of the table. A nil table stays nil.
func (t PriceTable) Clone() PriceTable {
	if t == nil {
		return nil
	}
	out := make(PriceTable, len(t))
	copy(out, t)
	return out
}

// PriceOption is one purchasable variant of a product.
//
// Exactly one pricing shape is consulted, in priority order Tiers, Plans,
// Flat, Pricing. A nil table means "shape absent"; an empty non-nil table is
// present but yields no price points.
type PriceOption struct {
	Name    string
	Tiers   PriceTable
	Plans   PriceTable
	Flat    *float64
	Pricing PriceTable

	// Display-only fields, never read by the allocation math.
	QtyMin          *int
	QtyMax          *int
	Notes           string
	TargetBudgetMin *float64
}

// Clone returns a deep copy of the option.
func (o PriceOption) Clone() PriceOption {
	out := o
	out.Tiers = o.Tiers.Clone()
	out.Plans = o.Plans.Clone()
	out.Pricing = o.Pricing.Clone()
	if o.Flat != nil {
		v := *o.Flat
		out.Flat = &v
	}
	if o.QtyMin != nil {
		v := *o.QtyMin
		out.QtyMin = &v
	}
	if o.QtyMax != nil {
		v := *o.QtyMax
		out.QtyMax = &v
	}
	if o.TargetBudgetMin != nil {
		v := *o.TargetBudgetMin
		out.TargetBudgetMin = &v
	}
	return out
}

// SeasonalTable maps a window label to option name to override price.
type SeasonalTable map[string]map[string]float64

// Clone returns a deep copy of the table.
func (t SeasonalTable) Clone() SeasonalTable {
	if t == nil {
		return nil
	}
	out := make(SeasonalTable, len(t))
	for window, prices := range t {
		inner := make(map[string]float64, len(prices))
		for opt, p := range prices {
			inner[opt] = p
		}
		out[window] = inner
	}
	return out
}

// ProductRecord is a single catalog product.
type ProductRecord struct {
	Name     string
	Options  []PriceOption
	Category string

	// DurationQuarters maps an upper-cased tier label to a quarter count.
	// Values are kept as loaded; unparsable entries count as one quarter.
	DurationQuarters map[string]string

	Description     string
	SalesStrategy   string
	DiscountPolicy  string
	SeasonalWindows SeasonalTable
}

// Clone returns a deep copy of the record.
func (r ProductRecord) Clone() ProductRecord {
	out := r
	if r.Options != nil {
		out.Options = make([]PriceOption, len(r.Options))
		for i, opt := range r.Options {
			out.Options[i] = opt.Clone()
		}
	}
	if r.DurationQuarters != nil {
		out.DurationQuarters = make(map[string]string, len(r.DurationQuarters))
		for k, v := range r.DurationQuarters {
			out.DurationQuarters[k] = v
		}
	}
	out.SeasonalWindows = r.SeasonalWindows.Clone()
	return out
}

// Catalog maps product name to record.
type Catalog map[string]ProductRecord

// Names returns the product names in ascending order. Every package that
// iterates a catalog uses this order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, rec := range c {
		out[name] = rec.Clone()
	}
	return out
}

// Meta carries the per-product attributes the loader keeps beside the record.
type Meta struct {
	Category        string
	SeasonalWindows SeasonalTable
	OptionNotes     map[string]string
	Description     string
	SalesStrategy   string
	DiscountPolicy  string
}

// MetaIndex maps product name to metadata.
type MetaIndex map[string]Meta

// Snapshot pairs a catalog with its metadata. Callers share a Snapshot
// between concurrent allocation runs and must not mutate it.
type Snapshot struct {
	Products Catalog
	Meta     MetaIndex
}

// Subset returns a snapshot restricted to the given product names. Unknown
// names are ignored.
func (s Snapshot) Subset(names []string) Snapshot {
	out := Snapshot{
		Products: make(Catalog, len(names)),
		Meta:     make(MetaIndex, len(names)),
	}
	for _, name := range names {
		rec, ok := s.Products[name]
		if !ok {
			continue
		}
		out.Products[name] = rec
		if m, ok := s.Meta[name]; ok {
			out.Meta[name] = m
		}
	}
	return out
}

// Windows returns the seasonal table for a product, preferring metadata and
// falling back to the record itself.
func (m MetaIndex) Windows(product string, rec ProductRecord) SeasonalTable {
	if meta, ok := m[product]; ok && meta.SeasonalWindows != nil {
		return meta.SeasonalWindows
	}
	return rec.SeasonalWindows
}

// CategoryOf returns the raw category for a product, preferring metadata.
func (m MetaIndex) CategoryOf(product string, rec ProductRecord) string {
	if meta, ok := m[product]; ok && meta.Category != "" {
		return meta.Category
	}
	return rec.Category
}
