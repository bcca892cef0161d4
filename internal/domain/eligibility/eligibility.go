// Package eligibility narrows the Summit Booth product to the options a
// client may buy.
//
// Profile text is mapped to a Segment by a Classifier. The default
// KeywordClassifier does plain substring matching; swap it for something
// smarter without touching the allocator.
package eligibility

import (
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// Segment is the client category that decides which booth rate applies.
type Segment int

const (
	// SegmentSmallBusiness is the default: basic booth rates.
	SegmentSmallBusiness Segment = iota
	// SegmentRegionalCVB is an Illinois convention and visitors bureau.
	SegmentRegionalCVB
	// SegmentOutOfState is a destination marketing organization outside Illinois.
	SegmentOutOfState
)

// String returns the segment name used in logs and API responses.
func (s Segment) String() string {
	switch s {
	case SegmentRegionalCVB:
		return "regional_cvb"
	case SegmentOutOfState:
		return "out_of_state_dmo"
	default:
		return "small_business"
	}
}

// Classifier maps free-form client profile text to a Segment.
type Classifier interface {
	Classify(profileText string) Segment
}

// KeywordClassifier classifies by case-insensitive keyword presence.
type KeywordClassifier struct {
	// RegionalAll must all appear for SegmentRegionalCVB.
	RegionalAll []string
	// OutOfStateAny needs one hit for SegmentOutOfState.
	OutOfStateAny []string
}

// DefaultClassifier returns the keyword sets used for Chicago-area clients.
func DefaultClassifier() KeywordClassifier {
	return KeywordClassifier{
		RegionalAll:   []string{"cvb", "illinois"},
		OutOfStateAny: []string{"dmo", "out-of-state", "out of state", "outside illinois"},
	}
}

// Classify implements Classifier.
func (k KeywordClassifier) Classify(profileText string) Segment {
	text := strings.ToLower(profileText)
	if len(k.RegionalAll) > 0 && containsAll(text, k.RegionalAll) {
		return SegmentRegionalCVB
	}
	if containsAny(text, k.OutOfStateAny) {
		return SegmentOutOfState
	}
	return SegmentSmallBusiness
}

func containsAll(text string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(text, strings.ToLower(k)) {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Option names the filter keeps for each segment.
const (
	RegionalOptionKey      = "Illinois CVB"
	OutOfStateOptionKey    = "DMO (out of Illinois)"
	BasicAdvertiserRate    = "Basic Booth — advertiser rate"
	BasicNonAdvertiserRate = "Basic Booth — non-advertiser rate"
	basicBoothFallback     = "basic booth"
)

// IsSummitBooth reports whether a product name carries both the "summit"
// and "booth" keywords.
func IsSummitBooth(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "summit") && strings.Contains(lower, "booth")
}

// Filter rewrites the Summit Booth option list for one client.
type Filter struct {
	classifier Classifier
}

// NewFilter creates a filter. A nil classifier uses DefaultClassifier.
func NewFilter(c Classifier) *Filter {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Filter{classifier: c}
}

// Apply returns a new catalog in which the Summit Booth product holds only
// the options the client qualifies for. Other products are shared with the
// input unchanged. The input catalog is never modified.
func (f *Filter) Apply(cat catalog.Catalog, profileText string, isAdvertiser bool) catalog.Catalog {
	out := make(catalog.Catalog, len(cat))
	segment := f.classifier.Classify(profileText)
	for name, rec := range cat {
		if !IsSummitBooth(name) {
			out[name] = rec
			continue
		}
		out[name] = filterBooth(rec, segment, isAdvertiser)
	}
	return out
}

// Segment exposes the classifier decision for reporting.
func (f *Filter) Segment(profileText string) Segment {
	return f.classifier.Classify(profileText)
}

func filterBooth(rec catalog.ProductRecord, segment Segment, isAdvertiser bool) catalog.ProductRecord {
	out := rec.Clone()
	switch segment {
	case SegmentRegionalCVB:
		out.Options = keep(out.Options, func(opt catalog.PriceOption) bool {
			return containsFold(opt.Name, RegionalOptionKey)
		})
	case SegmentOutOfState:
		out.Options = keep(out.Options, func(opt catalog.PriceOption) bool {
			return containsFold(opt.Name, OutOfStateOptionKey)
		})
	default:
		key := BasicNonAdvertiserRate
		if isAdvertiser {
			key = BasicAdvertiserRate
		}
		exact := keep(out.Options, func(opt catalog.PriceOption) bool { return opt.Name == key })
		if len(exact) == 0 {
			exact = keep(out.Options, func(opt catalog.PriceOption) bool {
				return strings.Contains(strings.ToLower(opt.Name), basicBoothFallback)
			})
		}
		out.Options = exact
	}
	return out
}

func keep(opts []catalog.PriceOption, pred func(catalog.PriceOption) bool) []catalog.PriceOption {
	out := []catalog.PriceOption{}
	for _, opt := range opts {
		if pred(opt) {
			out = append(out, opt)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// OptionAllowed applies the advertiser exclusivity rule on Summit Booth
// options: advertisers never see non-advertiser rates and non-advertisers
// never see advertiser-only rates. Generic options and other products are
// always allowed.
func OptionAllowed(product, option string, isAdvertiser bool) bool {
	if !IsSummitBooth(product) {
		return true
	}
	low := strings.ToLower(option)
	hasNon := strings.Contains(low, "non-advertiser") || strings.Contains(low, "non advertiser")
	hasAdv := strings.Contains(low, "advertiser") && !hasNon
	if isAdvertiser {
		return !hasNon
	}
	return !hasAdv
}
