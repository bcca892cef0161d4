package dto

import (
	"fmt"
	"time"

	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/profile"
)

// DateLayout is the billing date format accepted by the API and CLI.
const DateLayout = "2006-01-02"

// CreateProposalRequest is the request body for POST /api/proposals.
type CreateProposalRequest struct {
	Budget      *float64 `json:"budget" binding:"required"`
	TouristPct  *float64 `json:"tourist_pct"`
	IndustryPct *float64 `json:"industry_pct"`
	SoftCapPct  *float64 `json:"soft_cap_pct"`

	Products    []string               `json:"products"`     // Empty = whole catalog
	ProfileText string                 `json:"profile_text"` // Wins over Profile
	Profile     *profile.ClientProfile `json:"profile"`

	IsAdvertiser   *bool  `json:"is_advertiser"` // nil = configured default
	PrepayFullYear bool   `json:"prepay_full_year"`
	BillingDate    string `json:"billing_date"` // YYYY-MM-DD
}

// ToService converts the request body to a service request.
func (r CreateProposalRequest) ToService() (service.ProposalRequest, error) {
	billing, err := ParseDate(r.BillingDate)
	if err != nil {
		return service.ProposalRequest{}, err
	}
	req := service.ProposalRequest{
		TouristPct:     r.TouristPct,
		IndustryPct:    r.IndustryPct,
		SoftCapPct:     r.SoftCapPct,
		Products:       r.Products,
		ProfileText:    r.ProfileText,
		Profile:        r.Profile,
		IsAdvertiser:   r.IsAdvertiser,
		PrepayFullYear: r.PrepayFullYear,
		BillingDate:    billing,
	}
	if r.Budget != nil {
		req.Budget = *r.Budget
	}
	return req, nil
}

// DiscountRequest is the request body for POST /api/discounts.
type DiscountRequest struct {
	Product          string  `json:"product" binding:"required"`
	Option           string  `json:"option"`
	BasePrice        float64 `json:"base_price"`
	Tier             string  `json:"tier"`
	HasOtherProducts bool    `json:"has_other_products"`
	PrepayFullYear   bool    `json:"prepay_full_year"`
	IsAdvertiser     *bool   `json:"is_advertiser"`
	BillingDate      string  `json:"billing_date"`
}

// ToPricing converts the request body to a discount request. defaultAdvertiser
// applies when the body leaves is_advertiser out.
func (r DiscountRequest) ToPricing(defaultAdvertiser bool) (pricing.DiscountRequest, error) {
	billing, err := ParseDate(r.BillingDate)
	if err != nil {
		return pricing.DiscountRequest{}, err
	}
	return pricing.DiscountRequest{
		Product:          r.Product,
		Option:           r.Option,
		BasePrice:        r.BasePrice,
		Tier:             r.Tier,
		HasOtherProducts: r.HasOtherProducts,
		PrepayFullYear:   r.PrepayFullYear,
		IsAdvertiser:     boolOr(r.IsAdvertiser, defaultAdvertiser),
		BillingDate:      billing,
	}, nil
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// ParseDate parses an optional YYYY-MM-DD date. Empty input is no date.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("billing_date %q must be YYYY-MM-DD", s)
	}
	return &t, nil
}

// ProposalListParams represents query parameters for listing proposals.
type ProposalListParams struct {
	Limit int `json:"limit"`
}

// DefaultProposalListParams returns default values for proposal list params.
func DefaultProposalListParams() ProposalListParams {
	return ProposalListParams{
		Limit: 20,
	}
}
