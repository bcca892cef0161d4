package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBudget_UnderBudget(t *testing.T) {
	result := ValidateBudget(42000, 45000, 10)

	assert.True(t, result.Valid)
	assert.Equal(t, 42000.0, result.GrandTotal)
	assert.Equal(t, 49500.0, result.Cap)
	assert.Equal(t, 0.0, result.Overrun)
	assert.Empty(t, result.Reason)
}

func TestValidateBudget_WithinSoftCap(t *testing.T) {
	// Over the budget but inside the 10% allowance
	result := ValidateBudget(47250.5, 45000, 10)

	assert.True(t, result.Valid)
	assert.Equal(t, 2250.5, result.Overrun)
	assert.Empty(t, result.Reason)
}

func TestValidateBudget_ExactlyAtCap(t *testing.T) {
	result := ValidateBudget(49500, 45000, 10)

	assert.True(t, result.Valid)
	assert.Equal(t, 4500.0, result.Overrun)
}

func TestValidateBudget_OverCap(t *testing.T) {
	result := ValidateBudget(52000, 45000, 10)

	assert.False(t, result.Valid)
	assert.Equal(t, 7000.0, result.Overrun)
	assert.Contains(t, result.Reason, "exceeds the 10% soft cap")
	assert.Contains(t, result.Reason, "$49500.00")
	assert.Contains(t, result.Reason, "by $2500.00")
}

func TestValidateBudget_ZeroSoftCap(t *testing.T) {
	result := ValidateBudget(45000.01, 45000, 0)

	assert.False(t, result.Valid)
	assert.Equal(t, 45000.0, result.Cap)
}

func TestValidatePool(t *testing.T) {
	t.Run("within budget", func(t *testing.T) {
		result := ValidatePool("tourist", 26999.99, 27000)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Reason)
	})

	t.Run("baseline over budget", func(t *testing.T) {
		result := ValidatePool("industry", 18500, 18000)
		assert.False(t, result.Valid)
		assert.Equal(t, 500.0, result.Overrun)
		assert.Contains(t, result.Reason, "industry pool baseline")
	})
}

func TestRoundToCents(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.234, 1.23},
		{1.235, 1.24},
		{1.239, 1.24},
		{0.001, 0.00},
		{0.005, 0.01},
		{99.999, 100.00},
	}

	for _, tt := range tests {
		result := roundToCents(tt.input)
		assert.Equal(t, tt.expected, result, "roundToCents(%v)", tt.input)
	}
}
