package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
)

func flat(v float64) *float64 { return &v }

func mixedCatalog() (catalog.Catalog, catalog.MetaIndex) {
	cat := catalog.Catalog{
		"Visitor Guide": {Name: "Visitor Guide", Options: []catalog.PriceOption{
			{Name: "Half Page", Flat: flat(9000)},
			{Name: "Full Page", Flat: flat(15000)},
		}},
		"Reels": {Name: "Reels", Options: []catalog.PriceOption{{Name: "Reel", Flat: flat(995)}}},
		"Planner Eblast": {Name: "Planner Eblast", Options: []catalog.PriceOption{
			{Name: "Single", Flat: flat(5000)},
			{Name: "Series", Flat: flat(12000)},
		}},
		"Mystery":       {Name: "Mystery", Options: []catalog.PriceOption{{Name: "X", Flat: flat(1)}}},
		"Uncategorized": {Name: "Uncategorized", Category: "", Options: []catalog.PriceOption{{Name: "Y", Flat: flat(1)}}},
	}
	meta := catalog.MetaIndex{
		"Visitor Guide":  {Category: "Tourist (Leisure)"},
		"Reels":          {Category: "TOURIST"},
		"Planner Eblast": {Category: "Industry"},
		"Mystery":        {Category: "Other"},
	}
	return cat, meta
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "tourist", NormalizeCategory("  Tourist Market "))
	assert.Equal(t, "industry", NormalizeCategory("Meeting INDUSTRY"))
	assert.Equal(t, "other", NormalizeCategory("Other"))
	assert.Equal(t, "", NormalizeCategory(""))
}

func TestPartition(t *testing.T) {
	cat, meta := mixedCatalog()

	tourist, industry := Partition(cat, meta)

	assert.Equal(t, []string{"Reels", "Visitor Guide"}, tourist.Names())
	assert.Equal(t, []string{"Planner Eblast"}, industry.Names())
	assert.NotContains(t, tourist, "Mystery")
	assert.NotContains(t, industry, "Mystery")
	assert.NotContains(t, tourist, "Uncategorized")
	assert.NotContains(t, industry, "Uncategorized")
}

func TestPartition_FallsBackToRecordCategory(t *testing.T) {
	cat := catalog.Catalog{"Map": {Name: "Map", Category: "tourist"}}
	tourist, industry := Partition(cat, nil)
	assert.Contains(t, tourist, "Map")
	assert.Empty(t, industry)
}

func TestSubBudget_StandardSplit(t *testing.T) {
	assert.Equal(t, 27000.0, SubBudget(45000, 60))
	assert.Equal(t, 18000.0, SubBudget(45000, 40))
}

func TestAllocate(t *testing.T) {
	cat, meta := mixedCatalog()
	tourist, industry := Partition(cat, meta)

	res := Allocate(Split{TotalBudget: 45000, TouristPct: 60, IndustryPct: 40}, tourist, industry, meta, pricing.Terms{})

	assert.Equal(t, 27000.0, res.Tourist.Budget)
	assert.Equal(t, 18000.0, res.Industry.Budget)

	guide, ok := res.Tourist.Selection.Pick("Visitor Guide")
	require.True(t, ok)
	assert.Equal(t, "Full Page", guide.Option)
	assert.Equal(t, 15995.0, res.Tourist.Selection.Subtotal)

	eblast, ok := res.Industry.Selection.Pick("Planner Eblast")
	require.True(t, ok)
	assert.Equal(t, "Series", eblast.Option)
	assert.Equal(t, 12000.0, res.Industry.Selection.Subtotal)

	assert.Equal(t, 27995.0, res.GrandTotal)
	assert.Equal(t, 11005.0, res.Tourist.Remaining())
	assert.Len(t, res.Pools(), 2)
}

func TestAllocate_NoCrossPoolSurplus(t *testing.T) {
	cat := catalog.Catalog{
		"Guide": {Name: "Guide", Options: []catalog.PriceOption{
			{Name: "Small", Flat: flat(100)},
			{Name: "Big", Flat: flat(900)},
		}},
	}
	meta := catalog.MetaIndex{"Guide": {Category: "tourist"}}
	tourist, industry := Partition(cat, meta)

	res := Allocate(Split{TotalBudget: 1000, TouristPct: 50, IndustryPct: 50}, tourist, industry, meta, pricing.Terms{})

	p, _ := res.Tourist.Selection.Pick("Guide")
	assert.Equal(t, "Small", p.Option)
	assert.Empty(t, res.Industry.Selection.Picks)
	assert.Equal(t, 100.0, res.GrandTotal)
}

func TestAuditPartition(t *testing.T) {
	cat, meta := mixedCatalog()
	tourist, industry := Partition(cat, meta)

	audit := AuditPartition(Split{TotalBudget: 45000, TouristPct: 60, IndustryPct: 40}, tourist, industry)

	require.Len(t, audit, 2)
	assert.Equal(t, Tourist, audit[0].Pool)
	assert.Equal(t, 27000.0, audit[0].Budget)
	assert.Equal(t, []string{"Planner Eblast"}, audit[1].Products)
}
