package pricing

import (
	"strings"
)

// Override is a fixed contractual price for an existing advertiser.
type Override struct {
	Price float64
	Label string
}

const advertiserCampaignLabel = "Existing advertiser – with any campaign rate"

// overrideRule matches one product and an option-name predicate.
type overrideRule struct {
	product string
	match   func(option string) bool
	result  Override
}

func optionContains(sub string) func(string) bool {
	return func(option string) bool { return strings.Contains(option, sub) }
}

func optionPrefix(prefix string) func(string) bool {
	return func(option string) bool { return strings.HasPrefix(option, prefix) }
}

// overrideRules is checked in order. Add new contract rates as isolated
// entries.
var overrideRules = []overrideRule{
	{
		product: "Email Blast",
		match:   optionContains("Blast Email - concierge"),
		result:  Override{Price: 450.0, Label: "Existing advertiser contract rate"},
	},
	{
		product: "Ambassador Program",
		match:   optionPrefix("Standard Ambassador Program"),
		result:  Override{Price: 2950.0, Label: advertiserCampaignLabel},
	},
	{
		product: "Ambassador Program",
		match:   optionPrefix("Ambassador - Concierge Intro"),
		result:  Override{Price: 2750.0, Label: advertiserCampaignLabel},
	},
}

// AdvertiserOverride returns the contract rate for an advertiser buying the
// given product option. Non-advertisers never get an override.
func AdvertiserOverride(product, option string, isAdvertiser bool) (Override, bool) {
	if !isAdvertiser {
		return Override{}, false
	}
	product = strings.TrimSpace(product)
	option = strings.TrimSpace(option)
	for _, rule := range overrideRules {
		if rule.product == product && rule.match(option) {
			return rule.result, true
		}
	}
	return Override{}, false
}
