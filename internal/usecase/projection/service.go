package projection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/log"
	"github.com/simaogato/savings-backend/internal/usecase/rate"
)

const tracerName = "github.com/simaogato/savings-backend/internal/usecase/projection"

// RateKind tells whether an annual rate is nominal (APR) or effective (APY)
type RateKind int

const (
	RateNominal RateKind = iota
	RateEffective
)

// RunProjectionInput represents the input for running and recording a projection
// AnnualRate is a fraction. When RateKind is RateEffective it is a target APY
// and is converted to a nominal rate using the compounding frequency.
// A zero ReferenceYear or ReferenceStartMonth defaults to the current month.
type RunProjectionInput struct {
	StartAmount         float64
	MonthlyContribution float64
	AnnualRate          float64
	RateKind            RateKind
	CompoundFrequency   domain.CompoundFrequency
	DurationMonths      int
	ReferenceYear       int
	ReferenceStartMonth time.Month
}

// RateConversion represents both sides of an APR/APY conversion
type RateConversion struct {
	NominalRate       float64
	EffectiveYield    float64
	PeriodsPerYear    int
	CompoundFrequency domain.CompoundFrequency
}

// ProjectionService runs projections and keeps the session history
type ProjectionService struct {
	HistoryRepo domain.RunHistoryRepository
	Cache       domain.ResultCache // optional
	Logger      *log.Logger
	Now         func() time.Time

	group  singleflight.Group
	tracer trace.Tracer
}

// NewProjectionService creates a new ProjectionService instance
// cache may be nil to always compute
func NewProjectionService(historyRepo domain.RunHistoryRepository, cache domain.ResultCache, logger *log.Logger) *ProjectionService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ProjectionService{
		HistoryRepo: historyRepo,
		Cache:       cache,
		Logger:      logger.WithComponent(log.ComponentProjection),
		Now:         time.Now,
		tracer:      otel.Tracer(tracerName),
	}
}

// RunProjection resolves the nominal rate, runs the projection and appends it
// to the session history.
// Returns the recorded run with its RunNumber assigned.
func (s *ProjectionService) RunProjection(ctx context.Context, in RunProjectionInput) (*domain.ProjectionRun, error) {
	ctx, span := s.tracer.Start(ctx, "ProjectionService.RunProjection", trace.WithAttributes(
		attribute.Int("projection.months", in.DurationMonths),
		attribute.String("projection.frequency", in.CompoundFrequency.String()),
	))
	defer span.End()

	run, err := s.runProjection(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("projection.run_id", run.ID.String()),
		attribute.Int("projection.run_number", run.RunNumber),
	)
	return run, nil
}

func (s *ProjectionService) runProjection(ctx context.Context, in RunProjectionInput) (*domain.ProjectionRun, error) {
	if in.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d months", domain.ErrInvalidArgument, in.DurationMonths)
	}
	if in.DurationMonths > domain.MaxDurationMonths {
		return nil, fmt.Errorf("%w: duration must be at most %d months, got %d", domain.ErrInvalidArgument, domain.MaxDurationMonths, in.DurationMonths)
	}

	frequency := in.CompoundFrequency
	if !frequency.IsValid() {
		frequency = domain.CompoundDaily
	}

	nominal := in.AnnualRate
	if in.RateKind == RateEffective {
		periods := rate.PeriodsPerYearFor(frequency, in.DurationMonths)
		converted, err := rate.NominalRateFromEffectiveYield(in.AnnualRate, periods)
		if err != nil {
			return nil, err
		}
		nominal = converted
	}

	now := s.Now()
	input := domain.ProjectionInput{
		StartAmount:         in.StartAmount,
		MonthlyContribution: in.MonthlyContribution,
		NominalAnnualRate:   nominal,
		CompoundFrequency:   frequency,
		DurationMonths:      in.DurationMonths,
		ReferenceYear:       in.ReferenceYear,
		ReferenceStartMonth: in.ReferenceStartMonth,
	}
	if input.ReferenceYear == 0 {
		input.ReferenceYear = now.Year()
	}
	if input.ReferenceStartMonth == 0 {
		input.ReferenceStartMonth = now.Month()
	}

	result, err := s.calculate(ctx, input)
	if err != nil {
		return nil, err
	}

	run := &domain.ProjectionRun{
		ID:           uuid.New(),
		CalculatedAt: now,
		Input:        input,
		Result:       result,
	}
	if err := s.HistoryRepo.Append(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record projection run: %w", err)
	}

	s.Logger.InfoContext(ctx, "projection recorded",
		log.FieldOperation, log.OpProject,
		log.FieldRunID, run.ID.String(),
		log.FieldRunNumber, run.RunNumber,
		log.FieldMonths, input.DurationMonths,
		log.FieldFrequency, frequency.String(),
		log.FieldFinalBalance, result.FinalBalance,
	)

	return run, nil
}

// calculate runs Project through the optional cache.
// Concurrent calls with identical input share one computation.
// Cache failures are logged and never fail the calculation.
func (s *ProjectionService) calculate(ctx context.Context, input domain.ProjectionInput) (domain.ProjectionResult, error) {
	if s.Cache == nil {
		return Project(input)
	}

	key := CacheKey(input)
	if cached, ok, err := s.Cache.Get(ctx, key); err != nil {
		s.Logger.WarnContext(ctx, "projection cache read failed", log.FieldCacheKey, key, log.FieldError, err)
	} else if ok {
		s.Logger.DebugContext(ctx, "projection cache hit", log.FieldCacheKey, key, log.FieldCacheHit, true)
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		result, err := Project(input)
		if err != nil {
			return domain.ProjectionResult{}, err
		}
		if err := s.Cache.Set(ctx, key, result); err != nil {
			s.Logger.WarnContext(ctx, "projection cache write failed", log.FieldCacheKey, key, log.FieldError, err)
		}
		return result, nil
	})
	if err != nil {
		return domain.ProjectionResult{}, err
	}
	return v.(domain.ProjectionResult), nil
}

// CacheKey builds a deterministic key from every field that affects a projection
func CacheKey(input domain.ProjectionInput) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return strings.Join([]string{
		"projection",
		f(input.StartAmount),
		f(input.MonthlyContribution),
		f(input.NominalAnnualRate),
		strconv.Itoa(int(input.CompoundFrequency)),
		strconv.Itoa(input.DurationMonths),
		strconv.Itoa(input.ReferenceYear),
		strconv.Itoa(int(input.ReferenceStartMonth)),
	}, ":")
}

// ConvertRate converts a rate between nominal and effective form using the
// periods-per-year policy of the given frequency and account age.
func (s *ProjectionService) ConvertRate(ctx context.Context, annualRate float64, kind RateKind, frequency domain.CompoundFrequency, ageInMonths int) (RateConversion, error) {
	_, span := s.tracer.Start(ctx, "ProjectionService.ConvertRate")
	defer span.End()

	if !frequency.IsValid() {
		frequency = domain.CompoundDaily
	}
	periods := rate.PeriodsPerYearFor(frequency, ageInMonths)

	conversion := RateConversion{PeriodsPerYear: periods, CompoundFrequency: frequency}
	var err error
	switch kind {
	case RateEffective:
		conversion.EffectiveYield = annualRate
		conversion.NominalRate, err = rate.NominalRateFromEffectiveYield(annualRate, periods)
	default:
		conversion.NominalRate = annualRate
		conversion.EffectiveYield, err = rate.EffectiveYield(annualRate, periods)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RateConversion{}, err
	}

	s.Logger.With(log.FieldOperation, log.OpConvert).DebugContext(ctx, "rate converted",
		log.FieldFrequency, frequency.String(),
		"periods_per_year", periods,
		"effective_yield", conversion.EffectiveYield,
	)
	return conversion, nil
}

// ListRuns returns recorded runs in run order along with the total count
func (s *ProjectionService) ListRuns(ctx context.Context, limit, offset int) ([]*domain.ProjectionRun, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, fmt.Errorf("%w: limit and offset must not be negative", domain.ErrInvalidArgument)
	}

	runs, err := s.HistoryRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projection runs: %w", err)
	}

	total, err := s.HistoryRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projection runs: %w", err)
	}

	s.Logger.With(log.FieldOperation, log.OpList).DebugContext(ctx, "projection runs listed",
		"returned", len(runs),
		"total", total,
	)
	return runs, total, nil
}

// GetRun retrieves a recorded run by its 1-based run number
func (s *ProjectionService) GetRun(ctx context.Context, runNumber int) (*domain.ProjectionRun, error) {
	if runNumber <= 0 {
		return nil, fmt.Errorf("%w: run number must be positive, got %d", domain.ErrInvalidArgument, runNumber)
	}

	run, err := s.HistoryRepo.GetByRunNumber(ctx, runNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get projection run %d: %w", runNumber, err)
	}

	s.Logger.With(log.FieldOperation, log.OpGet).DebugContext(ctx, "projection run fetched", log.FieldRunNumber, runNumber)
	return run, nil
}

// GetRunByID retrieves a recorded run by its ID
func (s *ProjectionService) GetRunByID(ctx context.Context, id uuid.UUID) (*domain.ProjectionRun, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidArgument)
	}

	run, err := s.HistoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get projection run %s: %w", id, err)
	}

	s.Logger.With(log.FieldOperation, log.OpGet).DebugContext(ctx, "projection run fetched", log.FieldRunID, id.String())
	return run, nil
}
