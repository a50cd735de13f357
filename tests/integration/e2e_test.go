//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/savings-backend/internal/adapter/grpc/savingsv1"
	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

var (
	grpcClient   savingsv1.SavingsServiceClient
	healthClient healthpb.HealthClient
	grpcConn     *grpc.ClientConn
)

// TestMain connects to a running savings server (see cmd/server)
func TestMain(m *testing.M) {
	var err error
	grpcConn, err = grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}

	grpcClient = savingsv1.NewSavingsServiceClient(grpcConn)
	healthClient = healthpb.NewHealthClient(grpcConn)

	// Wait for the server to report SERVING (Simple retry)
	if err := waitForServing(10 * time.Second); err != nil {
		grpcConn.Close()
		panic(fmt.Sprintf("Savings server is not serving: %v", err))
	}

	code := m.Run()

	grpcConn.Close()
	os.Exit(code)
}

func waitForServing(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: savingsv1.ServiceName})
		cancel()
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			return nil
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = fmt.Errorf("status %s", resp.GetStatus())
			}
			return err
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// getAuthContext returns a context with authorization metadata
func getAuthContext() context.Context {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	md := metadata.New(map[string]string{
		"authorization": token,
	})
	return metadata.NewOutgoingContext(context.Background(), md)
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	addr := os.Getenv("GRPC_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}
	return addr
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func decimalField(t *testing.T, s *structpb.Struct, key string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s.GetFields()[key].GetStringValue())
	require.NoError(t, err, "field %s", key)
	return d
}

// TestEndToEndFlow tests the complete flow: Project -> ListRuns -> GetRun
func TestEndToEndFlow(t *testing.T) {
	ctx := getAuthContext()

	// 1. Project 1000 at 5% for a year with 100 monthly contributions
	projectResp, err := grpcClient.Project(ctx, mustStruct(t, map[string]any{
		"start_amount":         "1000",
		"monthly_contribution": "100",
		"annual_rate_percent":  "5",
		"compound_frequency":   "Monthly",
		"duration_months":      12,
		"reference_year":       2024,
		"reference_month":      1,
	}))
	require.NoError(t, err, "Project should succeed")

	run := projectResp.GetFields()["run"].GetStructValue()
	require.NotNil(t, run)

	expected, err := projection.Project(domain.ProjectionInput{
		StartAmount:         1000,
		MonthlyContribution: 100,
		NominalAnnualRate:   0.05,
		CompoundFrequency:   domain.CompoundMonthly,
		DurationMonths:      12,
		ReferenceYear:       2024,
		ReferenceStartMonth: time.January,
	})
	require.NoError(t, err)

	finalBalance := decimalField(t, run, "final_balance")
	assert.True(t, finalBalance.Equal(decimal.NewFromFloat(expected.FinalBalance)),
		"final balance %s should match the engine", finalBalance)
	assert.True(t, decimalField(t, run, "total_contributions").Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Monthly", run.GetFields()["compound_frequency"].GetStringValue())
	assert.Len(t, run.GetFields()["periods"].GetListValue().GetValues(), 12)

	runNumber := int(run.GetFields()["run_number"].GetNumberValue())
	runID := run.GetFields()["run_id"].GetStringValue()
	require.Positive(t, runNumber)

	// 2. The run shows up in the history
	listResp, err := grpcClient.ListRuns(ctx, mustStruct(t, map[string]any{}))
	require.NoError(t, err, "ListRuns should succeed")

	total := int(listResp.GetFields()["total"].GetNumberValue())
	assert.GreaterOrEqual(t, total, runNumber)

	found := false
	for _, v := range listResp.GetFields()["runs"].GetListValue().GetValues() {
		if v.GetStructValue().GetFields()["run_id"].GetStringValue() == runID {
			found = true
			_, hasPeriods := v.GetStructValue().GetFields()["periods"]
			assert.False(t, hasPeriods, "list entries should not carry periods")
		}
	}
	assert.True(t, found, "run %s should be listed", runID)

	// 3. GetRun returns the same run with its breakdown
	getResp, err := grpcClient.GetRun(ctx, mustStruct(t, map[string]any{"run_number": runNumber}))
	require.NoError(t, err, "GetRun should succeed")

	fetched := getResp.GetFields()["run"].GetStructValue()
	assert.Equal(t, runID, fetched.GetFields()["run_id"].GetStringValue())
	assert.True(t, decimalField(t, fetched, "final_balance").Equal(finalBalance))
	assert.Len(t, fetched.GetFields()["periods"].GetListValue().GetValues(), 12)
}

// TestConvertRate tests APR to APY conversion and back
func TestConvertRate(t *testing.T) {
	ctx := getAuthContext()

	resp, err := grpcClient.ConvertRate(ctx, mustStruct(t, map[string]any{
		"rate_percent":       "12",
		"compound_frequency": 2,
		"age_months":         12,
	}))
	require.NoError(t, err)
	assert.Equal(t, "12.68", resp.GetFields()["apy_percent_rounded"].GetStringValue())

	back, err := grpcClient.ConvertRate(ctx, mustStruct(t, map[string]any{
		"rate_percent":       resp.GetFields()["effective_yield_percent"].GetStringValue(),
		"rate_kind":          "effective",
		"compound_frequency": 2,
		"age_months":         12,
	}))
	require.NoError(t, err)
	assert.InDelta(t, 12.0, decimalField(t, back, "nominal_rate_percent").InexactFloat64(), 1e-9)
}

// TestNegativeScenarios tests error mapping across the wire
func TestNegativeScenarios(t *testing.T) {
	ctx := getAuthContext()

	// 1. Zero duration
	t.Run("ZeroDuration", func(t *testing.T) {
		_, err := grpcClient.Project(ctx, mustStruct(t, map[string]any{
			"start_amount":        "1000",
			"annual_rate_percent": "5",
			"duration_months":     0,
		}))
		require.Error(t, err, "Project with zero duration should return an error")
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "Error code should be InvalidArgument")
	})

	// 2. Unknown run
	t.Run("UnknownRun", func(t *testing.T) {
		_, err := grpcClient.GetRun(ctx, mustStruct(t, map[string]any{"run_number": 1_000_000}))
		require.Error(t, err, "GetRun with an unknown run number should return an error")
		assert.Equal(t, codes.NotFound, status.Code(err), "Error code should be NotFound")
	})

	// 3. Malformed amount
	t.Run("MalformedAmount", func(t *testing.T) {
		_, err := grpcClient.Project(ctx, mustStruct(t, map[string]any{
			"start_amount":        "lots",
			"annual_rate_percent": "5",
		}))
		require.Error(t, err, "Project with a malformed amount should return an error")
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "Error code should be InvalidArgument")
	})

	// 4. Missing token
	t.Run("MissingToken", func(t *testing.T) {
		_, err := grpcClient.ListRuns(context.Background(), mustStruct(t, map[string]any{}))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err), "Error code should be Unauthenticated")
	})
}
