// Package savingsv1 holds the savings.v1.SavingsService descriptor, server
// registration and client. Requests and responses are google.protobuf.Struct
// messages; field names are documented on each method.
package savingsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "savings.v1.SavingsService"

const (
	SavingsService_ConvertRate_FullMethodName = "/savings.v1.SavingsService/ConvertRate"
	SavingsService_Project_FullMethodName     = "/savings.v1.SavingsService/Project"
	SavingsService_ListRuns_FullMethodName    = "/savings.v1.SavingsService/ListRuns"
	SavingsService_GetRun_FullMethodName      = "/savings.v1.SavingsService/GetRun"
)

// SavingsServiceServer is the server API for SavingsService
type SavingsServiceServer interface {
	// ConvertRate converts between nominal (APR) and effective (APY) rates.
	// Request:  rate_percent, rate_kind ("nominal"|"effective"), compound_frequency, age_months
	// Response: nominal_rate_percent, effective_yield_percent, apy_percent_rounded, periods_per_year, compound_frequency
	ConvertRate(context.Context, *structpb.Struct) (*structpb.Struct, error)

	// Project runs a projection and records it in the session history.
	// Request:  start_amount, monthly_contribution, annual_rate_percent, rate_kind,
	//           compound_frequency, duration_months, reference_year, reference_month
	// Response: run (see GetRun)
	Project(context.Context, *structpb.Struct) (*structpb.Struct, error)

	// ListRuns pages through the session history without per-month periods.
	// Request:  limit, offset
	// Response: runs, total
	ListRuns(context.Context, *structpb.Struct) (*structpb.Struct, error)

	// GetRun returns one recorded run including its periods.
	// Request:  run_number or run_id
	// Response: run
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedSavingsServiceServer can be embedded to have forward compatible implementations
type UnimplementedSavingsServiceServer struct{}

func (UnimplementedSavingsServiceServer) ConvertRate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ConvertRate not implemented")
}

func (UnimplementedSavingsServiceServer) Project(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Project not implemented")
}

func (UnimplementedSavingsServiceServer) ListRuns(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRuns not implemented")
}

func (UnimplementedSavingsServiceServer) GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRun not implemented")
}

// RegisterSavingsServiceServer registers srv on s
func RegisterSavingsServiceServer(s grpc.ServiceRegistrar, srv SavingsServiceServer) {
	s.RegisterService(&SavingsService_ServiceDesc, srv)
}

// unaryHandler adapts one SavingsServiceServer method to a grpc.MethodDesc handler
func unaryHandler(fullMethod string, call func(SavingsServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SavingsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SavingsServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SavingsService_ServiceDesc is the grpc.ServiceDesc for SavingsService
var SavingsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SavingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ConvertRate",
			Handler:    unaryHandler(SavingsService_ConvertRate_FullMethodName, SavingsServiceServer.ConvertRate),
		},
		{
			MethodName: "Project",
			Handler:    unaryHandler(SavingsService_Project_FullMethodName, SavingsServiceServer.Project),
		},
		{
			MethodName: "ListRuns",
			Handler:    unaryHandler(SavingsService_ListRuns_FullMethodName, SavingsServiceServer.ListRuns),
		},
		{
			MethodName: "GetRun",
			Handler:    unaryHandler(SavingsService_GetRun_FullMethodName, SavingsServiceServer.GetRun),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

// SavingsServiceClient is the client API for SavingsService
type SavingsServiceClient interface {
	ConvertRate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Project(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListRuns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type savingsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSavingsServiceClient creates a client over cc
func NewSavingsServiceClient(cc grpc.ClientConnInterface) SavingsServiceClient {
	return &savingsServiceClient{cc: cc}
}

func (c *savingsServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *savingsServiceClient) ConvertRate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SavingsService_ConvertRate_FullMethodName, in, opts)
}

func (c *savingsServiceClient) Project(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SavingsService_Project_FullMethodName, in, opts)
}

func (c *savingsServiceClient) ListRuns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SavingsService_ListRuns_FullMethodName, in, opts)
}

func (c *savingsServiceClient) GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SavingsService_GetRun_FullMethodName, in, opts)
}
