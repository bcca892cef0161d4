package pricing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountRequest describes one proposal line to price for display.
type DiscountRequest struct {
	Product          string
	Option           string
	BasePrice        float64
	Tier             string
	HasOtherProducts bool
	PrepayFullYear   bool
	IsAdvertiser     bool
	BillingDate      *time.Time
}

// Discount is the displayed price of a line. Label is empty when no
// promotion applies.
type Discount struct {
	Price float64
	Label string
}

// Discounted reports whether a promotional label applies.
func (d Discount) Discounted() bool {
	return d.Label != ""
}

const (
	earlyBirdProduct = "Hotel Meetup"
	earlyBirdOption  = "Hotel Meetup 2026"
	earlyBirdTier    = "Early Bird Rate - Ends August 1"
	earlyBirdPrice   = 2395.0
	earlyBirdRetail  = 2595.0

	prepayLabel = "Prepay entire year – 10% off"
)

var prepayFactor = decimal.RequireFromString("0.9")

// discountRule prices a request for a single product. Names are already
// trimmed when a rule runs.
type discountRule func(req DiscountRequest) Discount

// productRules holds exactly one rule per product. Products without an
// entry are sold at the base price.
var productRules = map[string]discountRule{
	"Email Blast":                  emailBlastRule,
	"Chicago Does Reels":           reelsRule,
	"Ambassador Program":           ambassadorRule,
	"Chicago Does Interactive Map": interactiveMapRule,
}

// ResolveDiscount applies, in order: the dated early-bird rule, the
// advertiser override, the product's own rule, and finally the base price.
func ResolveDiscount(req DiscountRequest) Discount {
	req.Product = strings.TrimSpace(req.Product)
	req.Option = strings.TrimSpace(req.Option)

	if d, ok := earlyBird(req); ok {
		return d
	}
	if o, ok := AdvertiserOverride(req.Product, req.Option, req.IsAdvertiser); ok {
		return Discount{Price: o.Price, Label: o.Label}
	}
	if rule, ok := productRules[req.Product]; ok {
		return rule(req)
	}
	return Discount{Price: req.BasePrice}
}

// earlyBird handles the yearly August 1 deadline. After the deadline the
// retail price is charged even when the early-bird tier was requested.
func earlyBird(req DiscountRequest) (Discount, bool) {
	if req.BillingDate == nil || req.Product != earlyBirdProduct || !strings.Contains(req.Option, earlyBirdOption) {
		return Discount{}, false
	}
	if !strings.Contains(req.Tier, earlyBirdTier) {
		return Discount{Price: req.BasePrice}, true
	}
	billed := *req.BillingDate
	deadline := time.Date(billed.Year(), time.August, 1, 0, 0, 0, 0, billed.Location())
	if billed.Before(deadline) {
		return Discount{Price: earlyBirdPrice, Label: earlyBirdTier}, true
	}
	return Discount{Price: earlyBirdRetail}, true
}

func emailBlastRule(req DiscountRequest) Discount {
	if strings.Contains(req.Option, "Blast Email - concierge") {
		if req.HasOtherProducts {
			return Discount{Price: 450.0, Label: "Contract bundle price (with other products)"}
		}
		return Discount{Price: 750.0}
	}
	return Discount{Price: req.BasePrice}
}

func reelsRule(req DiscountRequest) Discount {
	if req.HasOtherProducts {
		return Discount{Price: 895.0, Label: "With other purchase discount"}
	}
	return Discount{Price: 995.0}
}

func ambassadorRule(req DiscountRequest) Discount {
	var retail, withCampaign float64
	switch {
	case strings.HasPrefix(req.Option, "Standard Ambassador Program"):
		retail, withCampaign = 3200.0, 2950.0
	case strings.HasPrefix(req.Option, "Ambassador - Concierge Intro"):
		retail, withCampaign = 3000.0, 2750.0
	default:
		return Discount{Price: req.BasePrice}
	}
	if req.HasOtherProducts {
		return Discount{Price: withCampaign, Label: "With Any Campaign rate"}
	}
	return Discount{Price: retail}
}

func interactiveMapRule(req DiscountRequest) Discount {
	if req.PrepayFullYear {
		price, _ := decimal.NewFromFloat(req.BasePrice).Mul(prepayFactor).Round(2).Float64()
		return Discount{Price: price, Label: prepayLabel}
	}
	return Discount{Price: req.BasePrice}
}
