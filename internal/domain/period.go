package domain

import "math"

// BalanceTolerance is the absolute tolerance used when reconciling balances
const BalanceTolerance = 1e-6

// Period represents one simulated month of a projection
// EndingBalance == StartingBalance + InterestEarned + Contribution
type Period struct {
	Month           int // 1-based
	StartingBalance float64
	Contribution    float64
	InterestEarned  float64 // growth during the month, excluding the contribution
	EndingBalance   float64
}

// Reconciles reports whether the period's balances add up within BalanceTolerance
func (p Period) Reconciles() bool {
	expected := p.StartingBalance + p.InterestEarned + p.Contribution
	return math.Abs(p.EndingBalance-expected) <= BalanceTolerance
}
