// Package validator checks allocation results against the client budget.
//
// The allocator never trims a selection, so a grand total can exceed what
// the client asked to spend. These checks surface that to the caller; they
// do not change the selection.
package validator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetValidation contains the result of checking a grand total.
type BudgetValidation struct {
	// Valid is true if the grand total is within the soft cap
	Valid bool

	// GrandTotal is the combined subtotal of both pools
	GrandTotal float64

	// Budget is the total budget requested by the client
	Budget float64

	// Cap is the budget plus the soft cap allowance
	Cap float64

	// Overrun is how far the grand total exceeds the budget (0 if under)
	Overrun float64

	// Reason explains why validation failed (empty if valid)
	Reason string
}

// ValidateBudget checks a grand total against budget*(1+softCapPct/100).
//
// A total over the budget but within the cap is valid; Overrun still
// reports the amount above the budget.
func ValidateBudget(grandTotal, budget, softCapPct float64) *BudgetValidation {
	total := roundToCents(grandTotal)
	capAmount := roundToCents(budget * (1 + softCapPct/100))

	overrun := roundToCents(total - budget)
	if overrun < 0 {
		overrun = 0
	}

	if total <= capAmount {
		return &BudgetValidation{
			Valid:      true,
			GrandTotal: total,
			Budget:     budget,
			Cap:        capAmount,
			Overrun:    overrun,
			Reason:     "",
		}
	}

	reason := fmt.Sprintf("grand total ($%.2f) exceeds the %.0f%% soft cap ($%.2f) on a $%.2f budget by $%.2f",
		total, softCapPct, capAmount, budget, roundToCents(total-capAmount))

	return &BudgetValidation{
		Valid:      false,
		GrandTotal: total,
		Budget:     budget,
		Cap:        capAmount,
		Overrun:    overrun,
		Reason:     reason,
	}
}

// PoolValidation flags a pool whose picks cost more than its sub-budget.
type PoolValidation struct {
	Valid    bool
	Subtotal float64
	Budget   float64
	Overrun  float64
	Reason   string
}

// ValidatePool checks one pool subtotal against its sub-budget. This only
// fails when the cheapest line of every product already overshoots.
func ValidatePool(pool string, subtotal, budget float64) *PoolValidation {
	sub := roundToCents(subtotal)
	diff := roundToCents(sub - budget)
	if diff <= 0 {
		return &PoolValidation{Valid: true, Subtotal: sub, Budget: budget}
	}
	return &PoolValidation{
		Valid:    false,
		Subtotal: sub,
		Budget:   budget,
		Overrun:  diff,
		Reason: fmt.Sprintf("%s pool baseline ($%.2f) exceeds its sub-budget ($%.2f) by $%.2f - no cheaper lines are available",
			pool, sub, budget, diff),
	}
}

// roundToCents rounds a float to 2 decimal places.
func roundToCents(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}
