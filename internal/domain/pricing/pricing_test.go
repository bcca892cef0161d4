package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

func ptr(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPoints_ShapePriority(t *testing.T) {
	t.Run("tiers win over everything", func(t *testing.T) {
		opt := catalog.PriceOption{
			Tiers:   catalog.PriceTable{{Label: "1X", Price: 100}},
			Plans:   catalog.PriceTable{{Label: "Annual", Price: 900}},
			Flat:    ptr(50),
			Pricing: catalog.PriceTable{{Label: "x", Price: 1}},
		}
		assert.Equal(t, []catalog.PricePoint{{Label: "1X", Price: 100}}, Points(opt))
	})

	t.Run("plans before flat", func(t *testing.T) {
		opt := catalog.PriceOption{
			Plans: catalog.PriceTable{{Label: "Annual", Price: 900}},
			Flat:  ptr(50),
		}
		assert.Equal(t, []catalog.PricePoint{{Label: "Annual", Price: 900}}, Points(opt))
	})

	t.Run("flat price labeled base", func(t *testing.T) {
		opt := catalog.PriceOption{Flat: ptr(50), Pricing: catalog.PriceTable{{Label: "x", Price: 1}}}
		assert.Equal(t, []catalog.PricePoint{{Label: BaseLabel, Price: 50}}, Points(opt))
	})

	t.Run("generic pricing map last", func(t *testing.T) {
		opt := catalog.PriceOption{Pricing: catalog.PriceTable{{Label: "x", Price: 1}}}
		assert.Equal(t, []catalog.PricePoint{{Label: "x", Price: 1}}, Points(opt))
	})

	t.Run("no shape yields empty list", func(t *testing.T) {
		points := Points(catalog.PriceOption{Name: "empty"})
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})

	t.Run("empty tier table shadows later shapes", func(t *testing.T) {
		opt := catalog.PriceOption{Tiers: catalog.PriceTable{}, Flat: ptr(50)}
		assert.Empty(t, Points(opt))
	})
}

func TestPoints_Ordering(t *testing.T) {
	opt := catalog.PriceOption{Tiers: catalog.PriceTable{
		{Label: "Retail", Price: 10},
		{Label: "12X", Price: 5000},
		{Label: "3X", Price: 1500},
		{Label: "1X", Price: 600},
		{Label: "Special", Price: 5},
		{Label: "3 Months", Price: 1400},
	}}

	got := Points(opt)
	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Label
	}

	assert.Equal(t, []string{"1X", "3 Months", "3X", "12X", "Special", "Retail"}, labels)
}

func TestPoints_DoesNotMutateOption(t *testing.T) {
	opt := catalog.PriceOption{Tiers: catalog.PriceTable{{Label: "3X", Price: 3}, {Label: "1X", Price: 1}}}
	_ = Points(opt)
	assert.Equal(t, "3X", opt.Tiers[0].Label)
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, 1.0, labelKey("1X"))
	assert.Equal(t, 12.0, labelKey("12 Months"))
	assert.Equal(t, 2.5, labelKey("Tier 2.5 plus 3"))
	assert.True(t, math.IsInf(labelKey("Retail"), 1))
	assert.True(t, math.IsInf(labelKey("v1.2.3"), 1))
	assert.True(t, math.IsInf(labelKey("."), 1))
	assert.Equal(t, 3.0, labelKey("Std. 3X"))
	assert.Equal(t, 2.0, labelKey("Approx. 2 weeks"))
	assert.Equal(t, 0.5, labelKey("Half .5 page"))
}

func TestPoints_AbbreviatedLabelsSortByCount(t *testing.T) {
	opt := catalog.PriceOption{Tiers: catalog.PriceTable{
		{Label: "Retail", Price: 100},
		{Label: "Std. 3X", Price: 300},
		{Label: "Std. 1X", Price: 50},
	}}

	got := Points(opt)
	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Label
	}

	assert.Equal(t, []string{"Std. 1X", "Std. 3X", "Retail"}, labels)
}

func TestLinePrice(t *testing.T) {
	rec := catalog.ProductRecord{
		Name: "Newsletter",
		DurationQuarters: map[string]string{
			"ANNUAL":  "4",
			"HALF":    "2",
			"BROKEN":  "n/a",
			"PARTIAL": "0.5",
		},
	}

	assert.Equal(t, 4000.0, LinePrice(rec, "annual", 1000))
	assert.Equal(t, 2000.0, LinePrice(rec, "Half", 1000))
	assert.Equal(t, 1000.0, LinePrice(rec, "broken", 1000))
	assert.Equal(t, 1000.0, LinePrice(rec, "partial", 1000))
	assert.Equal(t, 1000.0, LinePrice(rec, "unknown", 1000))
	assert.Equal(t, 1000.0, LinePrice(catalog.ProductRecord{}, "annual", 1000))
}

func TestSeasonalPrice(t *testing.T) {
	table := catalog.SeasonalTable{
		"9/1-9/30":         {"Booth": 1800},
		"Before Halloween": {"Booth": 2100},
		"Before Christmas": {"Other": 1},
	}

	t.Run("exact window", func(t *testing.T) {
		p, ok := SeasonalPrice(table, "Booth", *date(2025, time.September, 15))
		require.True(t, ok)
		assert.Equal(t, 1800.0, p)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		p, ok := SeasonalPrice(table, "Booth", *date(2025, time.September, 30))
		require.True(t, ok)
		assert.Equal(t, 1800.0, p)

		p, ok = SeasonalPrice(table, "Booth", *date(2025, time.October, 1))
		require.True(t, ok)
		assert.Equal(t, 2100.0, p)
	})

	t.Run("unlisted window is skipped", func(t *testing.T) {
		_, ok := SeasonalPrice(table, "Booth", *date(2025, time.May, 1))
		assert.False(t, ok)
	})

	t.Run("matched window without option gives no override", func(t *testing.T) {
		_, ok := SeasonalPrice(table, "Booth", *date(2025, time.November, 20))
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := SeasonalPrice(nil, "Booth", *date(2025, time.September, 15))
		assert.False(t, ok)
	})
}

func TestSeasonalPrice_ExactBeatsNamedOnOverlap(t *testing.T) {
	saved := NamedWindows
	defer func() { NamedWindows = saved }()
	NamedWindows = append([]Window{{Label: "Late Summer", Start: 801, End: 915}}, saved...)

	table := catalog.SeasonalTable{
		"Late Summer": {"Booth": 2500},
		"9/1-9/30":    {"Booth": 1800},
	}

	label, ok := MatchWindow(table, *date(2025, time.September, 10))
	require.True(t, ok)
	assert.Equal(t, "9/1-9/30", label)

	p, ok := SeasonalPrice(table, "Booth", *date(2025, time.September, 10))
	require.True(t, ok)
	assert.Equal(t, 1800.0, p)

	p, ok = SeasonalPrice(table, "Booth", *date(2025, time.August, 20))
	require.True(t, ok)
	assert.Equal(t, 2500.0, p)
}

func TestAdvertiserOverride(t *testing.T) {
	tests := []struct {
		name       string
		product    string
		option     string
		advertiser bool
		wantOK     bool
		wantPrice  float64
		wantLabel  string
	}{
		{"concierge email", "Email Blast", "Blast Email - concierge", true, true, 450.0, "Existing advertiser contract rate"},
		{"concierge email with padding", " Email Blast ", "  Blast Email - concierge (2x)", true, true, 450.0, "Existing advertiser contract rate"},
		{"non advertiser", "Email Blast", "Blast Email - concierge", false, false, 0, ""},
		{"standard ambassador", "Ambassador Program", "Standard Ambassador Program - 12 months", true, true, 2950.0, advertiserCampaignLabel},
		{"concierge intro", "Ambassador Program", "Ambassador - Concierge Intro", true, true, 2750.0, advertiserCampaignLabel},
		{"other ambassador option", "Ambassador Program", "Premium Ambassador", true, false, 0, ""},
		{"unlisted product", "Chicago Does Reels", "Reel", true, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := AdvertiserOverride(tt.product, tt.option, tt.advertiser)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrice, o.Price)
			assert.Equal(t, tt.wantLabel, o.Label)
		})
	}
}

func TestResolveDiscount_AdvertiserConcierge(t *testing.T) {
	d := ResolveDiscount(DiscountRequest{
		Product:      "Email Blast",
		Option:       "Blast Email - concierge",
		BasePrice:    750,
		Tier:         "1X",
		IsAdvertiser: true,
	})

	assert.Equal(t, 450.0, d.Price)
	assert.Equal(t, "Existing advertiser contract rate", d.Label)
	assert.True(t, d.Discounted())
}

func TestResolveDiscount_EarlyBird(t *testing.T) {
	req := DiscountRequest{
		Product:   "Hotel Meetup",
		Option:    "Hotel Meetup 2026",
		BasePrice: 2395,
		Tier:      "Early Bird Rate - Ends August 1",
	}

	t.Run("before the deadline", func(t *testing.T) {
		req := req
		req.BillingDate = date(2026, time.July, 1)
		d := ResolveDiscount(req)
		assert.Equal(t, 2395.0, d.Price)
		assert.Equal(t, "Early Bird Rate - Ends August 1", d.Label)
	})

	t.Run("on the deadline", func(t *testing.T) {
		req := req
		req.BillingDate = date(2026, time.August, 1)
		d := ResolveDiscount(req)
		assert.Equal(t, 2595.0, d.Price)
		assert.Empty(t, d.Label)
	})

	t.Run("after the deadline", func(t *testing.T) {
		req := req
		req.BillingDate = date(2026, time.September, 1)
		d := ResolveDiscount(req)
		assert.Equal(t, 2595.0, d.Price)
		assert.Empty(t, d.Label)
		assert.False(t, d.Discounted())
	})

	t.Run("retail tier keeps base", func(t *testing.T) {
		req := req
		req.Tier = "Retail"
		req.BasePrice = 2595
		req.BillingDate = date(2026, time.July, 1)
		d := ResolveDiscount(req)
		assert.Equal(t, 2595.0, d.Price)
		assert.Empty(t, d.Label)
	})

	t.Run("no billing date falls through to default", func(t *testing.T) {
		d := ResolveDiscount(req)
		assert.Equal(t, 2395.0, d.Price)
		assert.Empty(t, d.Label)
	})
}

func TestResolveDiscount_InteractiveMapPrepay(t *testing.T) {
	req := DiscountRequest{Product: "Chicago Does Interactive Map", Option: "Map", BasePrice: 1000, PrepayFullYear: true}

	d := ResolveDiscount(req)
	assert.Equal(t, 900.0, d.Price)
	assert.Equal(t, "Prepay entire year – 10% off", d.Label)

	req.PrepayFullYear = false
	d = ResolveDiscount(req)
	assert.Equal(t, 1000.0, d.Price)
	assert.Empty(t, d.Label)

	req.PrepayFullYear = true
	req.BasePrice = 333.33
	assert.Equal(t, 300.0, ResolveDiscount(req).Price)
}

func TestResolveDiscount_BundleRules(t *testing.T) {
	tests := []struct {
		name      string
		req       DiscountRequest
		wantPrice float64
		wantLabel string
	}{
		{
			name:      "concierge bundled",
			req:       DiscountRequest{Product: "Email Blast", Option: "Blast Email - concierge", BasePrice: 750, HasOtherProducts: true},
			wantPrice: 450.0, wantLabel: "Contract bundle price (with other products)",
		},
		{
			name:      "concierge alone",
			req:       DiscountRequest{Product: "Email Blast", Option: "Blast Email - concierge", BasePrice: 700},
			wantPrice: 750.0,
		},
		{
			name:      "planner eblast keeps base",
			req:       DiscountRequest{Product: "Email Blast", Option: "Planner Eblast", BasePrice: 1200, HasOtherProducts: true},
			wantPrice: 1200.0,
		},
		{
			name:      "reels bundled",
			req:       DiscountRequest{Product: "Chicago Does Reels", Option: "Reel", BasePrice: 995, HasOtherProducts: true},
			wantPrice: 895.0, wantLabel: "With other purchase discount",
		},
		{
			name:      "reels alone",
			req:       DiscountRequest{Product: "Chicago Does Reels", Option: "Reel", BasePrice: 500},
			wantPrice: 995.0,
		},
		{
			name:      "standard ambassador bundled",
			req:       DiscountRequest{Product: "Ambassador Program", Option: "Standard Ambassador Program", BasePrice: 3200, HasOtherProducts: true},
			wantPrice: 2950.0, wantLabel: "With Any Campaign rate",
		},
		{
			name:      "concierge intro alone",
			req:       DiscountRequest{Product: "Ambassador Program", Option: "Ambassador - Concierge Intro", BasePrice: 2000},
			wantPrice: 3000.0,
		},
		{
			name:      "other ambassador option",
			req:       DiscountRequest{Product: "Ambassador Program", Option: "Custom", BasePrice: 4100, HasOtherProducts: true},
			wantPrice: 4100.0,
		},
		{
			name:      "advertiser override beats bundle",
			req:       DiscountRequest{Product: "Ambassador Program", Option: "Standard Ambassador Program", BasePrice: 3200, IsAdvertiser: true},
			wantPrice: 2950.0, wantLabel: advertiserCampaignLabel,
		},
		{
			name:      "unknown product",
			req:       DiscountRequest{Product: "Print Ad", Option: "Full Page", BasePrice: 4000, HasOtherProducts: true, PrepayFullYear: true},
			wantPrice: 4000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ResolveDiscount(tt.req)
			assert.Equal(t, tt.wantPrice, d.Price)
			assert.Equal(t, tt.wantLabel, d.Label)
		})
	}
}

func TestEffectiveUnitPrice(t *testing.T) {
	windows := catalog.SeasonalTable{"9/1-9/30": {"Blast Email - concierge": 600, "Booth": 1800}}

	t.Run("no date keeps base", func(t *testing.T) {
		assert.Equal(t, 2000.0, EffectiveUnitPrice("Summit Booth", "Booth", 2000, windows, Terms{}))
	})

	t.Run("seasonal replaces base", func(t *testing.T) {
		terms := Terms{BillingDate: date(2025, time.September, 3)}
		assert.Equal(t, 1800.0, EffectiveUnitPrice("Summit Booth", "Booth", 2000, windows, terms))
	})

	t.Run("override wins over seasonal", func(t *testing.T) {
		terms := Terms{BillingDate: date(2025, time.September, 3), IsAdvertiser: true}
		assert.Equal(t, 450.0, EffectiveUnitPrice("Email Blast", "Blast Email - concierge", 750, windows, terms))
	})

	t.Run("seasonal only for non advertisers", func(t *testing.T) {
		terms := Terms{BillingDate: date(2025, time.September, 3)}
		assert.Equal(t, 600.0, EffectiveUnitPrice("Email Blast", "Blast Email - concierge", 750, windows, terms))
	})
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 1.01, RoundCents(1.005))
	assert.Equal(t, 27000.0, RoundCents(27000))
	assert.Equal(t, 0.3, SumCents(0.1, 0.2))
}
