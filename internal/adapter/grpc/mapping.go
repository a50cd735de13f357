package grpc

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

var (
	hundred  = decimal.NewFromInt(100)
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

// fieldDecimal reads an amount sent either as a decimal string ("1000.50") or a number.
// The bool result is false when the field is absent or null.
func fieldDecimal(req *structpb.Struct, key string) (decimal.Decimal, bool, error) {
	v, present := req.GetFields()[key]
	if !present {
		return decimal.Zero, false, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return decimal.Zero, false, nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(kind.StringValue))
		if err != nil {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return d, true, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s: must be finite", key)
		}
		return decimal.NewFromFloat(kind.NumberValue), true, nil
	default:
		return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s: expected a string or number", key)
	}
}

// requiredDecimal reads a mandatory amount field
func requiredDecimal(req *structpb.Struct, key string) (decimal.Decimal, error) {
	d, ok, err := fieldDecimal(req, key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	return d, nil
}

// optionalDecimal reads an amount field, defaulting to zero
func optionalDecimal(req *structpb.Struct, key string) (decimal.Decimal, error) {
	d, _, err := fieldDecimal(req, key)
	return d, err
}

// optionalInt reads a whole-number field, returning def when absent
func optionalInt(req *structpb.Struct, key string, def int) (int, error) {
	d, ok, err := fieldDecimal(req, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if !d.IsInteger() {
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s: must be a whole number", key)
	}
	if d.LessThan(minInt32) || d.GreaterThan(maxInt32) {
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s: out of range", key)
	}
	return int(d.IntPart()), nil
}

// parseRateKind reads rate_kind; absent means nominal
func parseRateKind(req *structpb.Struct) (projection.RateKind, error) {
	switch strings.ToLower(strings.TrimSpace(req.GetFields()["rate_kind"].GetStringValue())) {
	case "", "nominal", "apr":
		return projection.RateNominal, nil
	case "effective", "apy":
		return projection.RateEffective, nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid rate_kind: must be nominal or effective")
	}
}

// parseFrequency reads compound_frequency as a menu number or label, defaulting to Daily.
// Numbers must be whole.
func parseFrequency(req *structpb.Struct) (domain.CompoundFrequency, error) {
	v := req.GetFields()["compound_frequency"]
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
		n, err := optionalInt(req, "compound_frequency", int(domain.CompoundDaily))
		if err != nil {
			return 0, err
		}
		return domain.ParseCompoundFrequency(strconv.Itoa(n)), nil
	}
	return domain.ParseCompoundFrequency(v.GetStringValue()), nil
}

func percentToFraction(percent decimal.Decimal) float64 {
	return percent.Div(hundred).InexactFloat64()
}

func fractionToPercent(fraction float64) decimal.Decimal {
	return decimal.NewFromFloat(fraction).Mul(hundred)
}

// amount renders a float amount as an exact decimal string
func amount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// runToMap converts a domain run to a Struct-compatible map
func runToMap(run *domain.ProjectionRun, withPeriods bool) map[string]any {
	result := run.Result
	m := map[string]any{
		"run_id":                run.ID.String(),
		"run_number":            run.RunNumber,
		"calculated_at":         run.CalculatedAt.UTC().Format(time.RFC3339Nano),
		"start_amount":          amount(result.StartAmount),
		"nominal_rate_percent":  fractionToPercent(result.NominalAnnualRate).String(),
		"effective_apy_percent": fractionToPercent(result.EffectiveAPY).String(),
		"compound_frequency":    result.CompoundFrequency.String(),
		"duration_months":       result.NumMonths,
		"reference_year":        run.Input.ReferenceYear,
		"reference_month":       int(run.Input.ReferenceStartMonth),
		"total_contributions":   amount(result.TotalContributions),
		"total_interest_earned": amount(result.TotalInterestEarned),
		"final_balance":         amount(result.FinalBalance),
	}

	if withPeriods {
		periods := make([]any, 0, len(result.Periods))
		for _, p := range result.Periods {
			periods = append(periods, map[string]any{
				"month":            p.Month,
				"starting_balance": amount(p.StartingBalance),
				"contribution":     amount(p.Contribution),
				"interest_earned":  amount(p.InterestEarned),
				"ending_balance":   amount(p.EndingBalance),
			})
		}
		m["periods"] = periods
	}

	return m
}

// newStruct builds a response Struct, reporting conversion failures as Internal
func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return s, nil
}
