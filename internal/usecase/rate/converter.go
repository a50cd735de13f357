package rate

import (
	"fmt"
	"math"

	"github.com/simaogato/savings-backend/internal/domain"
)

// EffectiveYield converts a nominal annual rate into the effective annual yield (APY)
// Logic: (1 + nominalRate/periodsPerYear)^periodsPerYear - 1
// Both rates are fractions (0.05 for 5%)
func EffectiveYield(nominalRate float64, periodsPerYear int) (float64, error) {
	if periodsPerYear <= 0 {
		return 0, fmt.Errorf("%w: periods per year must be positive, got %d", domain.ErrInvalidArgument, periodsPerYear)
	}

	n := float64(periodsPerYear)
	return math.Pow(1+nominalRate/n, n) - 1, nil
}

// NominalRateFromEffectiveYield is the inverse of EffectiveYield
// Logic: periodsPerYear * ((1 + effectiveYield)^(1/periodsPerYear) - 1)
func NominalRateFromEffectiveYield(effectiveYield float64, periodsPerYear int) (float64, error) {
	if periodsPerYear <= 0 {
		return 0, fmt.Errorf("%w: periods per year must be positive, got %d", domain.ErrInvalidArgument, periodsPerYear)
	}
	// A fractional power of a non-positive base is undefined
	if effectiveYield <= -1 {
		return 0, fmt.Errorf("%w: effective yield must be greater than -1, got %v", domain.ErrInvalidArgument, effectiveYield)
	}

	n := float64(periodsPerYear)
	return n * (math.Pow(1+effectiveYield, 1/n) - 1), nil
}

// PeriodsPerYearFor maps a compounding frequency to the number of periods used
// when converting between nominal and effective rates.
//   - Yearly:  one period per full year of account age, never less than 1
//   - Monthly: one period per month of account age
//   - Daily:   365
//
// Unknown frequencies are treated as Daily.
// Monthly with ageInMonths <= 0 returns a non-positive count, which the
// conversion functions reject.
func PeriodsPerYearFor(frequency domain.CompoundFrequency, ageInMonths int) int {
	switch frequency {
	case domain.CompoundYearly:
		return max(ageInMonths/12, 1)
	case domain.CompoundMonthly:
		return ageInMonths
	default:
		return domain.DaysPerYear
	}
}
