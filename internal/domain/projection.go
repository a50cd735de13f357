package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxDurationMonths caps a projection at 100 years
const MaxDurationMonths = 1200

// ProjectionInput holds the validated numeric parameters of a projection
// NominalAnnualRate is a fraction (0.05 for 5%), not a percentage
type ProjectionInput struct {
	StartAmount         float64
	MonthlyContribution float64
	NominalAnnualRate   float64
	CompoundFrequency   CompoundFrequency
	DurationMonths      int
	ReferenceYear       int
	ReferenceStartMonth time.Month // calendar month of the first simulated period
}

// ProjectionResult represents the outcome of a projection
// FinalBalance == StartAmount + TotalContributions + TotalInterestEarned
type ProjectionResult struct {
	Periods             []Period
	StartAmount         float64
	NominalAnnualRate   float64
	CompoundFrequency   CompoundFrequency
	NumMonths           int
	TotalContributions  float64
	TotalInterestEarned float64
	FinalBalance        float64
	EffectiveAPY        float64
}

// Reconciles reports whether the aggregate totals add up within BalanceTolerance
func (r ProjectionResult) Reconciles() bool {
	expected := r.StartAmount + r.TotalContributions + r.TotalInterestEarned
	return math.Abs(r.FinalBalance-expected) <= BalanceTolerance
}

// ProjectionRun represents a projection recorded in the session history
type ProjectionRun struct {
	ID           uuid.UUID
	RunNumber    int // 1-based, assigned by the history repository
	CalculatedAt time.Time
	Input        ProjectionInput
	Result       ProjectionResult
}
