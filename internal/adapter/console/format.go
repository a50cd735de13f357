package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/simaogato/savings-backend/internal/domain"
)

// FormatCurrency formats an amount as en-US currency with 2 decimals ("$1,234.56", "-$12.00").
// Halves round away from zero.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	cents := fixed[len(fixed)-3:]
	grouped := message.NewPrinter(language.AmericanEnglish).Sprintf("%v", d.IntPart())
	return sign + "$" + grouped + cents
}

// FormatPercent renders a fractional rate as a percentage rounded half-to-even
// to 2 places, without trailing zeros ("12.68%", "5%").
func FormatPercent(fraction float64) string {
	return decimal.NewFromFloat(fraction*100).RoundBank(2).String() + "%"
}

// PrintBreakdown writes the month-by-month table of a projection
func PrintBreakdown(w io.Writer, periods []domain.Period) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Month      Starting Balance      Interest Earned      Ending Balance")
	fmt.Fprintln(w, strings.Repeat("=", 68))

	for _, p := range periods {
		fmt.Fprintf(w, "%-11d%16s%21s%18s\n",
			p.Month,
			FormatCurrency(p.StartingBalance),
			FormatCurrency(p.InterestEarned),
			FormatCurrency(p.EndingBalance),
		)
	}
}

// PrintSummary writes the totals of a projection
func PrintSummary(w io.Writer, result domain.ProjectionResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Ending Balance: %s\n", FormatCurrency(result.FinalBalance))
	fmt.Fprintf(w, "Interest Earned: %s\n", FormatCurrency(result.TotalInterestEarned))
	fmt.Fprintf(w, "Total Contributions: %s\n", FormatCurrency(result.TotalContributions))
	fmt.Fprintf(w, "APY (%s): %s\n", result.CompoundFrequency, FormatPercent(result.EffectiveAPY))
}
