package pricing

import (
	"github.com/shopspring/decimal"
)

// RoundCents rounds an amount to 2 decimal places, half away from zero.
func RoundCents(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// SumCents adds amounts exactly and rounds the total to 2 decimal places.
func SumCents(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	v, _ := total.Round(2).Float64()
	return v
}
