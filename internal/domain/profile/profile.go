// Package profile builds and reads the client profile text fed to the
// eligibility filter, and matches business types to Summit awards.
package profile

import (
	"regexp"
	"sort"
	"strings"
)

// ClientProfile is the survey a sales rep fills in for a client.
type ClientProfile struct {
	BusinessName string `json:"business_name" yaml:"business_name"`
	BusinessType string `json:"business_type" yaml:"business_type"`
	MatchedAward string `json:"matched_award,omitempty" yaml:"matched_award"`
	AudienceType string `json:"audience_type" yaml:"audience_type"`
	Focus        string `json:"focus" yaml:"focus"`
	MarketTarget string `json:"market_target" yaml:"market_target"`
}

// Text renders the profile as "Key: value" lines.
func (p ClientProfile) Text() string {
	award := p.MatchedAward
	if award == "" {
		award = "None"
	}
	return strings.Join([]string{
		"Business Name: " + p.BusinessName,
		"Business Type: " + p.BusinessType,
		"Matched Summit Award: " + award,
		"Audience Type: " + p.AudienceType,
		"Focus: " + p.Focus,
		"Market Target: " + p.MarketTarget,
	}, "\n")
}

var fieldPatterns = map[string]*regexp.Regexp{
	"Business Name":        regexp.MustCompile(`(?im)Business Name:[ \t]*(.*)`),
	"Business Type":        regexp.MustCompile(`(?im)Business Type:[ \t]*(.*)`),
	"Matched Summit Award": regexp.MustCompile(`(?im)Matched Summit Award:[ \t]*(.*)`),
	"Audience Type":        regexp.MustCompile(`(?im)Audience Type:[ \t]*(.*)`),
	"Focus":                regexp.MustCompile(`(?im)Focus:[ \t]*(.*)`),
	"Market Target":        regexp.MustCompile(`(?im)Market Target:[ \t]*(.*)`),
}

// Parse extracts profile fields from free-form text. Missing fields are
// left empty and an award of "None" reads as no award.
func Parse(text string) ClientProfile {
	field := func(key string) string {
		m := fieldPatterns[key].FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(m[1])
	}
	p := ClientProfile{
		BusinessName: field("Business Name"),
		BusinessType: field("Business Type"),
		MatchedAward: field("Matched Summit Award"),
		AudienceType: field("Audience Type"),
		Focus:        field("Focus"),
		MarketTarget: field("Market Target"),
	}
	if p.MatchedAward == "None" {
		p.MatchedAward = ""
	}
	return p
}

// Award is one Summit award definition.
type Award struct {
	Name                  string   `json:"name"`
	GeneralCategory       string   `json:"general_category"`
	EligibleBusinessTypes []string `json:"eligible_business_types"`
}

// AwardIndex maps business types to award names.
type AwardIndex struct {
	byType     map[string]string
	categories []string
}

// NewAwardIndex indexes awards. A general category always maps to its
// award; an eligible business type maps to the first award listing it.
func NewAwardIndex(awards []Award) *AwardIndex {
	idx := &AwardIndex{byType: make(map[string]string)}
	seen := make(map[string]bool)
	for _, a := range awards {
		if a.Name == "" {
			continue
		}
		if a.GeneralCategory != "" {
			idx.byType[a.GeneralCategory] = a.Name
			if !seen[a.GeneralCategory] {
				seen[a.GeneralCategory] = true
				idx.categories = append(idx.categories, a.GeneralCategory)
			}
		}
		for _, bt := range a.EligibleBusinessTypes {
			if bt == "" {
				continue
			}
			if _, ok := idx.byType[bt]; !ok {
				idx.byType[bt] = a.Name
			}
		}
	}
	sort.Strings(idx.categories)
	return idx
}

// Match returns the award for a business type.
func (i *AwardIndex) Match(businessType string) (string, bool) {
	if i == nil {
		return "", false
	}
	name, ok := i.byType[businessType]
	return name, ok
}

// Categories returns the general award categories, sorted.
func (i *AwardIndex) Categories() []string {
	if i == nil {
		return nil
	}
	out := make([]string, len(i.categories))
	copy(out, i.categories)
	return out
}

// WithAward fills MatchedAward from the index when it is empty.
func (i *AwardIndex) WithAward(p ClientProfile) ClientProfile {
	if p.MatchedAward != "" {
		return p
	}
	if name, ok := i.Match(p.BusinessType); ok {
		p.MatchedAward = name
	}
	return p
}
