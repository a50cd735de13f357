package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_Reconciles(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected bool
	}{
		{
			name:     "Balanced period",
			period:   Period{Month: 1, StartingBalance: 1000, Contribution: 100, InterestEarned: 4.25, EndingBalance: 1104.25},
			expected: true,
		},
		{
			name:     "Within tolerance",
			period:   Period{Month: 1, StartingBalance: 1000, Contribution: 0, InterestEarned: 1, EndingBalance: 1001.0000000001},
			expected: true,
		},
		{
			name:     "Missing contribution",
			period:   Period{Month: 1, StartingBalance: 1000, Contribution: 100, InterestEarned: 4.25, EndingBalance: 1004.25},
			expected: false,
		},
		{
			name:     "Negative balances",
			period:   Period{Month: 2, StartingBalance: -50, Contribution: -10, InterestEarned: -0.01, EndingBalance: -60.01},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.period.Reconciles())
		})
	}
}

func TestProjectionResult_Reconciles(t *testing.T) {
	result := ProjectionResult{
		StartAmount:         1000,
		TotalContributions:  1200,
		TotalInterestEarned: 61.5,
		FinalBalance:        2261.5,
	}
	assert.True(t, result.Reconciles())

	result.FinalBalance = 2262
	assert.False(t, result.Reconciles())
}
