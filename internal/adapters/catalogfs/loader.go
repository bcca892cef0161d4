// Package catalogfs loads the product catalog, the Summit awards config and
// client input files from JSON on disk.
//
// Each product lives in its own *.json file. Files are read in filename
// order; a later file with the same product name replaces an earlier one.
package catalogfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/profile"
)

type rawOption struct {
	Name            string          `json:"name"`
	PriceUSD        json.RawMessage `json:"price_usd"`
	PriceUSDByPlan  json.RawMessage `json:"price_usd_by_plan"`
	Pricing         json.RawMessage `json:"pricing"`
	MinQty          *int            `json:"min_qty"`
	MaxQty          *int            `json:"max_qty"`
	Notes           json.RawMessage `json:"notes"`
	TargetBudgetMin json.RawMessage `json:"target_budget_min"`
}

type rawProduct struct {
	ProductName          string                                `json:"product_name"`
	Name                 string                                `json:"name"`
	PriceOptions         []rawOption                           `json:"price_options"`
	Options              []rawOption                           `json:"options"`
	Category             string                                `json:"category"`
	Categories           []string                              `json:"categories"`
	DurationQuarterMap   map[string]json.RawMessage            `json:"duration_quarter_map"`
	ProductDescription   json.RawMessage                       `json:"product_description"`
	Description          json.RawMessage                       `json:"description"`
	SalesStrategy        json.RawMessage                       `json:"sales_strategy"`
	DiscountPolicy       json.RawMessage                       `json:"discount_policy"`
	SeasonalPriceWindows map[string]map[string]json.RawMessage `json:"seasonal_price_windows"`
}

// LoadDir reads every *.json product file in dir.
func LoadDir(dir string) (catalog.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("read products dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	snap := catalog.Snapshot{
		Products: make(catalog.Catalog, len(files)),
		Meta:     make(catalog.MetaIndex, len(files)),
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		rec, meta, err := LoadFile(path)
		if err != nil {
			return catalog.Snapshot{}, err
		}
		snap.Products[rec.Name] = rec
		snap.Meta[rec.Name] = meta
	}
	return snap, nil
}

// LoadFile reads a single product file.
func LoadFile(path string) (catalog.ProductRecord, catalog.Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.ProductRecord{}, catalog.Meta{}, fmt.Errorf("read %s: %w", path, err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec, meta, err := parseProduct(data, stem)
	if err != nil {
		return catalog.ProductRecord{}, catalog.Meta{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return rec, meta, nil
}

func parseProduct(data []byte, stem string) (catalog.ProductRecord, catalog.Meta, error) {
	var raw rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return catalog.ProductRecord{}, catalog.Meta{}, err
	}

	name := firstNonEmpty(raw.ProductName, raw.Name, stem)

	rawOpts := raw.PriceOptions
	if len(rawOpts) == 0 {
		rawOpts = raw.Options
	}

	category := raw.Category
	if category == "" && len(raw.Categories) > 0 {
		category = raw.Categories[0]
	}

	rec := catalog.ProductRecord{
		Name:             name,
		Options:          make([]catalog.PriceOption, 0, len(rawOpts)),
		Category:         category,
		DurationQuarters: make(map[string]string, len(raw.DurationQuarterMap)),
		Description:      firstNonEmpty(text(raw.ProductDescription), text(raw.Description)),
		SalesStrategy:    text(raw.SalesStrategy),
		DiscountPolicy:   text(raw.DiscountPolicy),
		SeasonalWindows:  seasonalTable(raw.SeasonalPriceWindows),
	}
	for k, v := range raw.DurationQuarterMap {
		rec.DurationQuarters[strings.ToUpper(k)] = text(v)
	}

	notes := make(map[string]string)
	for i, ro := range rawOpts {
		opt, err := parseOption(ro, name)
		if err != nil {
			return catalog.ProductRecord{}, catalog.Meta{}, fmt.Errorf("option %d: %w", i, err)
		}
		if opt.Notes != "" {
			notes[opt.Name] = opt.Notes
		}
		rec.Options = append(rec.Options, opt)
	}

	meta := catalog.Meta{
		Category:        category,
		SeasonalWindows: rec.SeasonalWindows,
		OptionNotes:     notes,
		Description:     rec.Description,
		SalesStrategy:   rec.SalesStrategy,
		DiscountPolicy:  rec.DiscountPolicy,
	}
	return rec, meta, nil
}

func parseOption(ro rawOption, product string) (catalog.PriceOption, error) {
	opt := catalog.PriceOption{
		Name:   firstNonEmpty(ro.Name, product),
		QtyMin: ro.MinQty,
		QtyMax: ro.MaxQty,
		Notes:  text(ro.Notes),
	}
	if v, ok := number(ro.TargetBudgetMin); ok {
		opt.TargetBudgetMin = &v
	}

	tiers, ok, err := decodeTable(ro.PriceUSD)
	if err != nil {
		return opt, fmt.Errorf("price_usd: %w", err)
	}
	if ok {
		opt.Tiers = tiers
	} else if isNumber(ro.PriceUSD) {
		if v, ok := number(ro.PriceUSD); ok {
			opt.Flat = &v
		}
	}

	if opt.Plans, _, err = decodeTable(ro.PriceUSDByPlan); err != nil {
		return opt, fmt.Errorf("price_usd_by_plan: %w", err)
	}
	if opt.Pricing, _, err = decodeTable(ro.Pricing); err != nil {
		return opt, fmt.Errorf("pricing: %w", err)
	}
	return opt, nil
}

func seasonalTable(raw map[string]map[string]json.RawMessage) catalog.SeasonalTable {
	if len(raw) == 0 {
		return nil
	}
	out := make(catalog.SeasonalTable, len(raw))
	for window, prices := range raw {
		inner := make(map[string]float64, len(prices))
		for opt, v := range prices {
			if p, ok := number(v); ok {
				inner[opt] = p
			}
		}
		out[window] = inner
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// LoadAwards reads the Summit awards config, a JSON array of awards.
func LoadAwards(path string) ([]profile.Award, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read awards: %w", err)
	}
	var awards []profile.Award
	if err := json.Unmarshal(data, &awards); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return awards, nil
}

// ClientInput is a prepared proposal request file.
type ClientInput struct {
	ClientProfile     string   `json:"client_profile"`
	Budget            float64  `json:"budget"`
	CandidateProducts []string `json:"candidate_products"`
}

// LoadClientInput reads a client input file.
func LoadClientInput(path string) (*ClientInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client input: %w", err)
	}
	var in ClientInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &in, nil
}
