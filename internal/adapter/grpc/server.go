package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/savings-backend/internal/adapter/grpc/savingsv1"
	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

const defaultAgeMonths = 12

// Server implements the SavingsService gRPC server
type Server struct {
	savingsv1.UnimplementedSavingsServiceServer

	ProjectionService *projection.ProjectionService
}

// NewServer creates a new gRPC server instance
func NewServer(projectionService *projection.ProjectionService) *Server {
	return &Server{
		ProjectionService: projectionService,
	}
}

// ConvertRate handles the ConvertRate RPC
func (s *Server) ConvertRate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ratePercent, err := requiredDecimal(req, "rate_percent")
	if err != nil {
		return nil, err
	}
	kind, err := parseRateKind(req)
	if err != nil {
		return nil, err
	}
	age, err := optionalInt(req, "age_months", defaultAgeMonths)
	if err != nil {
		return nil, err
	}

	frequency, err := parseFrequency(req)
	if err != nil {
		return nil, err
	}

	conversion, err := s.ProjectionService.ConvertRate(ctx, percentToFraction(ratePercent), kind, frequency, age)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"nominal_rate_percent":    fractionToPercent(conversion.NominalRate).String(),
		"effective_yield_percent": fractionToPercent(conversion.EffectiveYield).String(),
		"apy_percent_rounded":     fractionToPercent(conversion.EffectiveYield).RoundBank(2).StringFixed(2),
		"periods_per_year":        conversion.PeriodsPerYear,
		"compound_frequency":      conversion.CompoundFrequency.String(),
	})
}

// Project handles the Project RPC
func (s *Server) Project(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	startAmount, err := optionalDecimal(req, "start_amount")
	if err != nil {
		return nil, err
	}
	contribution, err := optionalDecimal(req, "monthly_contribution")
	if err != nil {
		return nil, err
	}
	ratePercent, err := requiredDecimal(req, "annual_rate_percent")
	if err != nil {
		return nil, err
	}
	kind, err := parseRateKind(req)
	if err != nil {
		return nil, err
	}
	months, err := optionalInt(req, "duration_months", defaultAgeMonths)
	if err != nil {
		return nil, err
	}
	year, err := optionalInt(req, "reference_year", 0)
	if err != nil {
		return nil, err
	}
	month, err := optionalInt(req, "reference_month", 0)
	if err != nil {
		return nil, err
	}
	frequency, err := parseFrequency(req)
	if err != nil {
		return nil, err
	}

	input := projection.RunProjectionInput{
		StartAmount:         startAmount.InexactFloat64(),
		MonthlyContribution: contribution.InexactFloat64(),
		AnnualRate:          percentToFraction(ratePercent),
		RateKind:            kind,
		CompoundFrequency:   frequency,
		DurationMonths:      months,
		ReferenceYear:       year,
		ReferenceStartMonth: time.Month(month),
	}

	run, err := s.ProjectionService.RunProjection(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"run": runToMap(run, true),
	})
}

// ListRuns handles the ListRuns RPC
func (s *Server) ListRuns(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil {
		return nil, err
	}
	offset, err := optionalInt(req, "offset", 0)
	if err != nil {
		return nil, err
	}

	runs, total, err := s.ProjectionService.ListRuns(ctx, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]any, 0, len(runs))
	for _, run := range runs {
		items = append(items, runToMap(run, false))
	}

	return newStruct(map[string]any{
		"runs":  items,
		"total": total,
	})
}

// GetRun handles the GetRun RPC
// A run_id, when present, takes precedence over run_number.
func (s *Server) GetRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		run *domain.ProjectionRun
		err error
	)

	if rawID := req.GetFields()["run_id"].GetStringValue(); rawID != "" {
		id, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid run_id format: %v", parseErr)
		}
		run, err = s.ProjectionService.GetRunByID(ctx, id)
	} else {
		runNumber, intErr := optionalInt(req, "run_number", 0)
		if intErr != nil {
			return nil, intErr
		}
		run, err = s.ProjectionService.GetRun(ctx, runNumber)
	}
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"run": runToMap(run, true),
	})
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	}

	errorMsg := err.Error()

	// Unwrapped validation messages
	if strings.Contains(errorMsg, "must be positive") ||
		strings.Contains(errorMsg, "invalid") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
