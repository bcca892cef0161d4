package pricing

import (
	"time"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// Window is a month-day range, inclusive on both ends. Start and End are
// encoded as month*100 + day.
type Window struct {
	Label string
	Start int
	End   int
}

// Contains reports whether d falls inside the window, ignoring the year.
func (w Window) Contains(d time.Time) bool {
	md := int(d.Month())*100 + d.Day()
	return w.Start <= md && md <= w.End
}

// ExactWindows carry the lowest promotional prices and are checked first.
var ExactWindows = []Window{
	{Label: "4/15-6/14", Start: 415, End: 614},
	{Label: "6/15-8/31", Start: 615, End: 831},
	{Label: "9/1-9/30", Start: 901, End: 930},
}

// NamedWindows are the broader commemorative windows, checked after
// ExactWindows.
var NamedWindows = []Window{
	{Label: "Before Valentine's Day", Start: 101, End: 213},
	{Label: "After Valentine's Day", Start: 214, End: 414},
	{Label: "Before Halloween", Start: 1001, End: 1031},
	{Label: "Before Christmas", Start: 1101, End: 1224},
}

// MatchWindow returns the label of the first window listed in the table that
// contains the date. Exact windows win over named ones.
func MatchWindow(table catalog.SeasonalTable, d time.Time) (string, bool) {
	if len(table) == 0 {
		return "", false
	}
	for _, family := range [][]Window{ExactWindows, NamedWindows} {
		for _, w := range family {
			if _, listed := table[w.Label]; listed && w.Contains(d) {
				return w.Label, true
			}
		}
	}
	return "", false
}

// SeasonalPrice returns the override price of an option on a date. When the
// matched window does not list the option there is no override; later
// windows are not consulted.
func SeasonalPrice(table catalog.SeasonalTable, option string, d time.Time) (float64, bool) {
	label, ok := MatchWindow(table, d)
	if !ok {
		return 0, false
	}
	price, ok := table[label][option]
	return price, ok
}
