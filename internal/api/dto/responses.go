package dto

import (
	"time"

	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/validator"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// PricePointResponse is one (tier, price) pair.
type PricePointResponse struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// OptionResponse represents a price option of a product.
type OptionResponse struct {
	Name   string               `json:"name"`
	Prices []PricePointResponse `json:"prices"`
	Notes  string               `json:"notes,omitempty"`
	QtyMin *int                 `json:"qty_min,omitempty"`
	QtyMax *int                 `json:"qty_max,omitempty"`
}

// ProductResponse represents a catalog product.
type ProductResponse struct {
	Name            string                        `json:"name"`
	Category        string                        `json:"category,omitempty"`
	Pool            string                        `json:"pool,omitempty"`
	Description     string                        `json:"description,omitempty"`
	DiscountPolicy  string                        `json:"discount_policy,omitempty"`
	Options         []OptionResponse              `json:"options"`
	SeasonalWindows map[string]map[string]float64 `json:"seasonal_windows,omitempty"`
}

// ProductListResponse is returned when listing products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// NewProductResponse converts a catalog record. Prices are listed in the
// same order the allocator walks them.
func NewProductResponse(rec catalog.ProductRecord, category, poolName string) ProductResponse {
	resp := ProductResponse{
		Name:            rec.Name,
		Category:        category,
		Pool:            poolName,
		Description:     rec.Description,
		DiscountPolicy:  rec.DiscountPolicy,
		Options:         make([]OptionResponse, 0, len(rec.Options)),
		SeasonalWindows: rec.SeasonalWindows,
	}
	for _, opt := range rec.Options {
		points := pricing.Points(opt)
		o := OptionResponse{
			Name:   opt.Name,
			Prices: make([]PricePointResponse, 0, len(points)),
			Notes:  opt.Notes,
			QtyMin: opt.QtyMin,
			QtyMax: opt.QtyMax,
		}
		for _, p := range points {
			o.Prices = append(o.Prices, PricePointResponse{Label: p.Label, Price: p.Price})
		}
		resp.Options = append(resp.Options, o)
	}
	return resp
}

// LineResponse is one priced row of a proposal.
type LineResponse struct {
	Product           string  `json:"product"`
	Option            string  `json:"option"`
	Tier              string  `json:"tier"`
	Qty               int     `json:"qty"`
	LinePrice         float64 `json:"line_price"`
	UnitPriceOriginal float64 `json:"unit_price_original"`
	UnitPrice         float64 `json:"unit_price"`
	Discount          string  `json:"discount,omitempty"`
	TotalOriginal     float64 `json:"total_original"`
	Total             float64 `json:"total"`
}

// PoolResponse is one pool section of a proposal.
type PoolResponse struct {
	Pool          string         `json:"pool"`
	Budget        float64        `json:"budget"`
	Baseline      float64        `json:"baseline"`
	Subtotal      float64        `json:"subtotal"`
	Remaining     float64        `json:"remaining"`
	Upgrades      int            `json:"upgrades"`
	WithinBudget  bool           `json:"within_budget"`
	Warning       string         `json:"warning,omitempty"`
	Lines         []LineResponse `json:"lines"`
	TotalOriginal float64        `json:"total_original"`
	Total         float64        `json:"total"`
}

// ValidationResponse reports the grand total against the soft cap.
type ValidationResponse struct {
	Valid      bool    `json:"valid"`
	GrandTotal float64 `json:"grand_total"`
	Budget     float64 `json:"budget"`
	Cap        float64 `json:"cap"`
	Overrun    float64 `json:"overrun"`
	Reason     string  `json:"reason,omitempty"`
}

// ProposalResponse represents a generated proposal.
type ProposalResponse struct {
	ID              string             `json:"id"`
	GeneratedAt     string             `json:"generated_at"`
	Budget          float64            `json:"budget"`
	TouristPct      float64            `json:"tourist_pct"`
	IndustryPct     float64            `json:"industry_pct"`
	Segment         string             `json:"segment"`
	Pools           []PoolResponse     `json:"pools"`
	GrandTotal      float64            `json:"grand_total"`
	DiscountedTotal float64            `json:"discounted_total"`
	Validation      ValidationResponse `json:"validation"`
	Products        []string           `json:"products"`
	MissingProducts []string           `json:"missing_products,omitempty"`
	Preview         string             `json:"preview,omitempty"`
}

// ProposalSummaryResponse is a proposal row in list responses.
type ProposalSummaryResponse struct {
	ID          string  `json:"id"`
	GeneratedAt string  `json:"generated_at"`
	Budget      float64 `json:"budget"`
	GrandTotal  float64 `json:"grand_total"`
	Valid       bool    `json:"valid"`
}

// ProposalListResponse is returned when listing proposals.
type ProposalListResponse struct {
	Proposals []ProposalSummaryResponse `json:"proposals"`
	Count     int                       `json:"count"`
}

// NewProposalResponse converts a generated proposal.
func NewProposalResponse(p *service.Proposal) ProposalResponse {
	resp := ProposalResponse{
		ID:              p.ID,
		GeneratedAt:     p.GeneratedAt.UTC().Format(time.RFC3339),
		Budget:          p.Budget,
		TouristPct:      p.TouristPct,
		IndustryPct:     p.IndustryPct,
		Segment:         p.Segment.String(),
		GrandTotal:      p.GrandTotal,
		DiscountedTotal: p.DiscountedTotal,
		Validation:      newValidationResponse(p.Validation),
		Products:        nonNil(p.Products),
		MissingProducts: p.MissingProducts,
	}
	for _, sec := range p.Sections() {
		resp.Pools = append(resp.Pools, newPoolResponse(sec))
	}
	return resp
}

// NewProposalSummary converts a proposal to a list row.
func NewProposalSummary(p *service.Proposal) ProposalSummaryResponse {
	return ProposalSummaryResponse{
		ID:          p.ID,
		GeneratedAt: p.GeneratedAt.UTC().Format(time.RFC3339),
		Budget:      p.Budget,
		GrandTotal:  p.GrandTotal,
		Valid:       p.Validation.Valid,
	}
}

func newPoolResponse(sec service.Section) PoolResponse {
	sel := sec.Pool.Selection
	resp := PoolResponse{
		Pool:          string(sec.Pool.Name),
		Budget:        pricing.RoundCents(sec.Pool.Budget),
		Baseline:      sel.Baseline,
		Subtotal:      sel.Subtotal,
		Remaining:     sec.Pool.Remaining(),
		Upgrades:      sel.Upgrades,
		WithinBudget:  sec.Validation.Valid,
		Warning:       sec.Validation.Reason,
		Lines:         make([]LineResponse, 0, len(sec.Lines)),
		TotalOriginal: sec.TotalOriginal,
		Total:         sec.Total,
	}
	for _, l := range sec.Lines {
		pick, _ := sel.Pick(l.Product)
		resp.Lines = append(resp.Lines, LineResponse{
			Product:           l.Product,
			Option:            l.Option,
			Tier:              l.Tier,
			Qty:               l.Qty,
			LinePrice:         pick.LinePrice,
			UnitPriceOriginal: l.UnitPriceOriginal,
			UnitPrice:         l.UnitPrice,
			Discount:          l.Discount,
			TotalOriginal:     l.TotalOriginal,
			Total:             l.Total,
		})
	}
	return resp
}

func newValidationResponse(v *validator.BudgetValidation) ValidationResponse {
	if v == nil {
		return ValidationResponse{}
	}
	return ValidationResponse{
		Valid:      v.Valid,
		GrandTotal: v.GrandTotal,
		Budget:     v.Budget,
		Cap:        v.Cap,
		Overrun:    v.Overrun,
		Reason:     v.Reason,
	}
}

// AwardsResponse lists the Summit award categories. Match is set when the
// request named a business type that qualifies for an award.
type AwardsResponse struct {
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
	Match      string   `json:"match,omitempty"`
}

// DiscountResponse is returned by the discount endpoint.
type DiscountResponse struct {
	FinalPrice float64 `json:"final_price"`
	Label      string  `json:"label,omitempty"`
	Discounted bool    `json:"discounted"`
}

// NewDiscountResponse converts a resolved discount.
func NewDiscountResponse(d pricing.Discount) DiscountResponse {
	return DiscountResponse{FinalPrice: d.Price, Label: d.Label, Discounted: d.Discounted()}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
