package pricing

import (
	"time"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// Terms are the client-specific inputs that change a price.
type Terms struct {
	BillingDate  *time.Time
	IsAdvertiser bool
}

// EffectiveUnitPrice is the price the allocator optimizes over: the seasonal
// price replaces the base price when the date falls in a listed window, then
// an advertiser override replaces either. Discounts are never applied here.
func EffectiveUnitPrice(product, option string, base float64, windows catalog.SeasonalTable, terms Terms) float64 {
	price := base
	if terms.BillingDate != nil {
		if seasonal, ok := SeasonalPrice(windows, option, *terms.BillingDate); ok {
			price = seasonal
		}
	}
	if o, ok := AdvertiserOverride(product, option, terms.IsAdvertiser); ok {
		return o.Price
	}
	return price
}
