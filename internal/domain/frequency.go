package domain

import (
	"strconv"
	"strings"
)

// CompoundFrequency represents how often interest is compounded per year
// The numeric values match the console menu choices (1=Daily, 2=Monthly, 3=Yearly)
type CompoundFrequency int

const (
	CompoundDaily   CompoundFrequency = 1
	CompoundMonthly CompoundFrequency = 2
	CompoundYearly  CompoundFrequency = 3
)

// DaysPerYear is the fixed day count used for daily compounding and proration
const DaysPerYear = 365

var compoundFrequencyLabels = map[CompoundFrequency]string{
	CompoundDaily:   "Daily",
	CompoundMonthly: "Monthly",
	CompoundYearly:  "Yearly",
}

// String returns the display label of the frequency
func (f CompoundFrequency) String() string {
	if label, ok := compoundFrequencyLabels[f]; ok {
		return label
	}
	return "Unknown"
}

// IsValid reports whether f is one of the known frequencies
func (f CompoundFrequency) IsValid() bool {
	_, ok := compoundFrequencyLabels[f]
	return ok
}

// ParseCompoundFrequency maps a menu choice ("1", "2", "3") or a label
// ("daily", "Monthly", ...) to a CompoundFrequency.
// Empty or unrecognized input falls back to CompoundDaily.
func ParseCompoundFrequency(input string) CompoundFrequency {
	input = strings.TrimSpace(input)
	if input == "" {
		return CompoundDaily
	}

	if n, err := strconv.Atoi(input); err == nil {
		if f := CompoundFrequency(n); f.IsValid() {
			return f
		}
		return CompoundDaily
	}

	for f, label := range compoundFrequencyLabels {
		if strings.EqualFold(label, input) {
			return f
		}
	}
	return CompoundDaily
}
